package model

import (
	"sort"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Summary 汇总表解析结果（名字 + 三个指标）
type Summary struct {
	Name     string `json:"name"`
	Total    int    `json:"total"`
	HIndex   int    `json:"h_index"`
	I10Index int    `json:"i10_index"`
}

// YearlyCitations 年度引用 (年份 -> 引用数)
type YearlyCitations map[int]int

// Years 按年份升序返回
func (y YearlyCitations) Years() []int {
	years := make([]int, 0, len(y))
	for year := range y {
		years = append(years, year)
	}
	sort.Ints(years)
	return years
}

// MarshalYAML 按年份升序输出
func (y YearlyCitations) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, year := range y.Years() {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.Itoa(year)},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.Itoa(y[year])},
		)
	}
	return node, nil
}

// AuthorRecord 学者引用指标
// 只由解析器在所有字段都解析成功后构建，构建后不再修改
type AuthorRecord struct {
	Name            string          `yaml:"name" json:"name"`
	Total           int             `yaml:"total" json:"total"`
	HIndex          int             `yaml:"h_index" json:"h_index"`
	I10Index        int             `yaml:"i10_index" json:"i10_index"`
	YearlyCitations YearlyCitations `yaml:"years" json:"years"`
}

// NewAuthorRecord 由汇总数据和年度引用构建记录
func NewAuthorRecord(summary Summary, yearly YearlyCitations) *AuthorRecord {
	if yearly == nil {
		yearly = YearlyCitations{}
	}
	return &AuthorRecord{
		Name:            summary.Name,
		Total:           summary.Total,
		HIndex:          summary.HIndex,
		I10Index:        summary.I10Index,
		YearlyCitations: yearly,
	}
}
