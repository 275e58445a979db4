package entity

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"errors"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// Consumer 取值
const (
	ConsumerFrontEnd = "front-end"
	ConsumerBackEnd  = "back-end"
	ConsumerBoth     = "both"
)

// ConsumerKey specs 中用于设置 consumer 的键
const ConsumerKey = "consumer"

// MaxNameLength QoS 规格名称的最大长度
const MaxNameLength = 255

// ValidConsumer 检查 consumer 是否合法
func ValidConsumer(consumer string) bool {
	switch consumer {
	case ConsumerFrontEnd, ConsumerBackEnd, ConsumerBoth:
		return true
	}
	return false
}

// QoSSpec QoS 规格
type QoSSpec struct {
	ID        string    `json:"id"       xml:"id,attr"`
	Name      string    `json:"name"     xml:"name,attr"`
	Consumer  string    `json:"consumer" xml:"consumer,attr"`
	Specs     Specs     `json:"specs"    xml:"specs"`
	CreatedAt time.Time `json:"-"        xml:"-"`
}

// Field 按名称取字段值，供分页排序和过滤使用
func (q QoSSpec) Field(key string) (any, bool) {
	switch key {
	case "id":
		return q.ID, true
	case "name":
		return q.Name, true
	case "consumer":
		return q.Consumer, true
	case "created_at":
		return q.CreatedAt, true
	}
	return nil, false
}

// Link 分页链接
type Link struct {
	Href string `json:"href" xml:"href,attr"`
	Rel  string `json:"rel"  xml:"rel,attr"`
}

// ListQoSSpecsRequest 列出 QoS 规格请求
// 分页和过滤参数直接从 query 中解析
type ListQoSSpecsRequest struct {
	ProjectID string `uri:"project_id" json:"-" xml:"-"`
}

// ListQoSSpecsResponse 列出 QoS 规格响应
type ListQoSSpecsResponse struct {
	QoSSpecs []*QoSSpec `json:"qos_specs"`
	Links    []Link     `json:"qos_specs_links,omitempty"`
}

type listQoSSpecsXML struct {
	QoSSpecs []*QoSSpec `xml:"qos_spec"`
	Links    *linksXML  `xml:"qos_specs_links"`
}

type linksXML struct {
	Links []Link `xml:"link"`
}

// MarshalXML 输出 <qos_specs><qos_spec .../>...</qos_specs>
// 只有存在下一页时才输出 qos_specs_links
func (r ListQoSSpecsResponse) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	out := listQoSSpecsXML{QoSSpecs: r.QoSSpecs}
	if len(r.Links) > 0 {
		out.Links = &linksXML{Links: r.Links}
	}
	return e.EncodeElement(out, xml.StartElement{Name: xml.Name{Local: "qos_specs"}})
}

// ShowQoSSpecsRequest 查看 QoS 规格请求
type ShowQoSSpecsRequest struct {
	ProjectID string `uri:"project_id" json:"-" xml:"-"`
	ID        string `uri:"id"         json:"-" xml:"-"`
}

// QoSSpecsResponse 单个 QoS 规格响应，用于 show 和 create
type QoSSpecsResponse struct {
	XMLName  xml.Name `json:"-"         xml:"qos_specs"`
	QoSSpecs *QoSSpec `json:"qos_specs" xml:"qos_spec"`
}

// CreateQoSSpecsRequest 创建 QoS 规格请求
// qos_specs 保留原始 JSON，由 Parse 校验结构
type CreateQoSSpecsRequest struct {
	ProjectID string          `uri:"project_id" json:"-"         xml:"-"`
	QoSSpecs  json.RawMessage `json:"qos_specs" xml:"-"`
}

// Parse 校验并拆出名称和其余参数
// 返回的 specs 不包含 name，可能包含 consumer
func (r *CreateQoSSpecsRequest) Parse() (string, Specs, error) {
	specs, err := DecodeSpecs(r.QoSSpecs)
	if err != nil {
		return "", nil, err
	}

	name, ok := specs["name"]
	if !ok {
		return "", nil, invalidInput("Please specify a name for QoS specs.")
	}
	delete(specs, "name")

	name = strings.TrimSpace(name)
	if name == "" {
		return "", nil, invalidInput("QoS specs name can not be empty.")
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return "", nil, invalidInput("QoS specs name has more than 255 characters.")
	}

	if consumer, ok := specs[ConsumerKey]; ok && !ValidConsumer(consumer) {
		return "", nil, invalidInput("Invalid consumer " + strconv.Quote(consumer) + ", must be one of front-end, back-end, both.")
	}

	return name, specs, nil
}

// UpdateQoSSpecsRequest 更新 QoS 规格请求
type UpdateQoSSpecsRequest struct {
	ProjectID string          `uri:"project_id" json:"-"         xml:"-"`
	ID        string          `uri:"id"         json:"-"         xml:"-"`
	QoSSpecs  json.RawMessage `json:"qos_specs" xml:"-"`
}

// Parse 校验要更新的键值
func (r *UpdateQoSSpecsRequest) Parse() (Specs, error) {
	specs, err := DecodeSpecs(r.QoSSpecs)
	if err != nil {
		return nil, err
	}
	if consumer, ok := specs[ConsumerKey]; ok && !ValidConsumer(consumer) {
		return nil, invalidInput("Invalid consumer " + strconv.Quote(consumer) + ", must be one of front-end, back-end, both.")
	}
	return specs, nil
}

// UpdateQoSSpecsResponse 更新 QoS 规格响应，原样返回更新的键值
type UpdateQoSSpecsResponse struct {
	QoSSpecs Specs `json:"qos_specs"`
}

// MarshalXML 输出 <qos_specs><k>v</k></qos_specs>
func (r UpdateQoSSpecsResponse) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	return r.QoSSpecs.MarshalXML(e, xml.StartElement{Name: xml.Name{Local: "qos_specs"}})
}

// DeleteQoSSpecsRequest 删除 QoS 规格请求
type DeleteQoSSpecsRequest struct {
	ProjectID string `uri:"project_id" json:"-" xml:"-"`
	ID        string `uri:"id"         json:"-" xml:"-"`
	Force     string `form:"force"     json:"-" xml:"-"`
}

// IsForce 解析 force 参数
func (r *DeleteQoSSpecsRequest) IsForce() bool {
	return parseBool(r.Force)
}

// DeleteKeysRequest 删除 QoS 规格中指定键的请求
// JSON: {"keys": ["a", "b"]}，XML: <keys><a/><b/></keys>
type DeleteKeysRequest struct {
	ProjectID string   `uri:"project_id" json:"-"    xml:"-"`
	ID        string   `uri:"id"         json:"-"    xml:"-"`
	Keys      []string `json:"keys"      xml:"-"`
}

// UnmarshalXML 只接受根元素为 keys 的文档，子元素名即键名
func (r *DeleteKeysRequest) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	keys, err := decodeKeys(d, start)
	if err != nil {
		return err
	}
	r.Keys = keys
	return nil
}

// ErrMalformedKeys 根元素不是 keys
var ErrMalformedKeys = errors.New("malformed request body, root element must be keys")

// DecodeKeysXML 解析 <keys> 文档，按文档顺序返回键名
func DecodeKeysXML(data []byte) ([]string, error) {
	d := xml.NewDecoder(bytes.NewReader(data))
	for {
		tok, err := d.Token()
		if err != nil {
			return nil, ErrMalformedKeys
		}
		if start, ok := tok.(xml.StartElement); ok {
			return decodeKeys(d, start)
		}
	}
}

func decodeKeys(d *xml.Decoder, start xml.StartElement) ([]string, error) {
	if start.Name.Local != "keys" {
		return nil, ErrMalformedKeys
	}

	keys := []string{}
	for {
		tok, err := d.Token()
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			keys = append(keys, t.Name.Local)
			if err := d.Skip(); err != nil {
				return nil, err
			}
		case xml.EndElement:
			return keys, nil
		}
	}
}

// parseBool 兼容 true/false、1/0、yes/no、on/off，大小写不敏感
func parseBool(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "t", "1", "yes", "y", "on":
		return true
	}
	return false
}
