package entity

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"unicode"

	"github.com/jimyag/qosd/pkg/apierror"
)

// Specs QoS 规格的键值参数
// XML 中每个键是一个子元素，按键名排序输出
type Specs map[string]string

// MarshalXML 输出 <start><k1>v1</k1><k2>v2</k2></start>
func (s Specs) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	for _, key := range slices.Sorted(maps.Keys(s)) {
		if !ValidSpecKey(key) {
			return fmt.Errorf("invalid spec key %q", key)
		}
		if err := e.EncodeElement(s[key], xml.StartElement{Name: xml.Name{Local: key}}); err != nil {
			return err
		}
	}
	return e.EncodeToken(start.End())
}

// UnmarshalXML 把每个子元素还原为一个键值对
func (s *Specs) UnmarshalXML(d *xml.Decoder, _ xml.StartElement) error {
	out := Specs{}
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			var value string
			if err := d.DecodeElement(&value, &t); err != nil {
				return err
			}
			out[t.Name.Local] = value
		case xml.EndElement:
			*s = out
			return nil
		}
	}
}

// DecodeSpecs 解析请求中的 qos_specs 对象
// 值只能是字符串、数字或布尔，数字和布尔转为字符串
func DecodeSpecs(raw json.RawMessage) (Specs, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, invalidInput("Missing required element 'qos_specs' in request body.")
	}

	var values map[string]json.RawMessage
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil, invalidInput("Malformed request body, qos_specs must be an object.")
	}
	if values == nil {
		return nil, invalidInput("Malformed request body, qos_specs must be an object.")
	}

	specs := make(Specs, len(values))
	for key, value := range values {
		if !ValidSpecKey(key) {
			return nil, invalidInput(fmt.Sprintf("Invalid key %q, keys must start with a letter or underscore and contain only letters, digits, '_', '-' or '.'.", key))
		}
		str, err := scalarString(value)
		if err != nil {
			return nil, invalidInput(fmt.Sprintf("Value for key %q is not a string, number or boolean.", key))
		}
		specs[key] = str
	}
	return specs, nil
}

// ValidSpecKey 检查 key 能否作为 XML 元素名
// 首字符为字母或下划线，其余为字母、数字、'_'、'-' 或 '.'
func ValidSpecKey(key string) bool {
	if key == "" {
		return false
	}
	for i, r := range key {
		switch {
		case r == '_' || unicode.IsLetter(r):
		case i > 0 && (r == '-' || r == '.' || unicode.IsDigit(r)):
		default:
			return false
		}
	}
	return true
}

func scalarString(raw json.RawMessage) (string, error) {
	var v any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return "", err
	}
	switch tv := v.(type) {
	case string:
		return tv, nil
	case json.Number:
		return tv.String(), nil
	case bool:
		return strconv.FormatBool(tv), nil
	default:
		return "", fmt.Errorf("unsupported value %s", string(raw))
	}
}

func invalidInput(msg string) error {
	return apierror.WrapError(apierror.ErrInvalidInput, msg, nil)
}
