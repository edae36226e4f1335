package model

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// yamlIndent 输出缩进
const yamlIndent = 2

// YAML 序列化为YAML文本
// 键顺序固定: name, total, h_index, i10_index, years（年份升序）
func (r *AuthorRecord) YAML() (string, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(yamlIndent)

	if err := enc.Encode(r); err != nil {
		return "", fmt.Errorf("failed to encode record: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("failed to flush encoder: %w", err)
	}

	return buf.String(), nil
}
