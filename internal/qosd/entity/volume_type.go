package entity

import (
	"encoding/xml"
	"errors"
	"strings"
	"time"
)

// VolumeType 卷类型，最多关联一个 QoS 规格
type VolumeType struct {
	ID          string    `json:"id"                     xml:"id,attr"`
	Name        string    `json:"name"                   xml:"name,attr"`
	Description string    `json:"description,omitempty"  xml:"description,attr,omitempty"`
	QoSSpecsID  string    `json:"qos_specs_id,omitempty" xml:"qos_specs_id,attr,omitempty"`
	CreatedAt   time.Time `json:"-"                      xml:"-"`
}

// CreateVolumeTypeRequest 创建卷类型请求
type CreateVolumeTypeRequest struct {
	ProjectID  string `uri:"project_id" json:"-" xml:"-"`
	VolumeType struct {
		Name        string `json:"name"        xml:"name,attr"`
		Description string `json:"description" xml:"description,attr"`
	} `json:"volume_type" xml:"volume_type"`
}

// IsValid 校验请求
func (r *CreateVolumeTypeRequest) IsValid() error {
	if strings.TrimSpace(r.VolumeType.Name) == "" {
		return errors.New("volume type name can not be empty")
	}
	return nil
}

// VolumeTypeResponse 单个卷类型响应
type VolumeTypeResponse struct {
	VolumeType *VolumeType `json:"volume_type"`
}

// MarshalXML 输出 <volume_type id="" name=""/>
func (r VolumeTypeResponse) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	return e.EncodeElement(r.VolumeType, xml.StartElement{Name: xml.Name{Local: "volume_type"}})
}

// ListVolumeTypesResponse 列出卷类型响应
type ListVolumeTypesResponse struct {
	XMLName     xml.Name      `json:"-"            xml:"volume_types"`
	VolumeTypes []*VolumeType `json:"volume_types" xml:"volume_type"`
}
