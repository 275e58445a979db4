package entity

import "encoding/xml"

// AssociationTypeVolumeType 关联类型，目前只有卷类型
const AssociationTypeVolumeType = "volume_type"

// Association QoS 规格与卷类型的关联
type Association struct {
	AssociationType string `json:"association_type" xml:"association_type,attr"`
	Name            string `json:"name"             xml:"name,attr"`
	ID              string `json:"id"               xml:"id,attr"`
}

// AssociationsRequest 查看 QoS 规格关联请求
type AssociationsRequest struct {
	ProjectID string `uri:"project_id" json:"-" xml:"-"`
	ID        string `uri:"id"         json:"-" xml:"-"`
}

// AssociationsResponse 查看 QoS 规格关联响应
type AssociationsResponse struct {
	XMLName      xml.Name      `json:"-"                xml:"qos_associations"`
	Associations []Association `json:"qos_associations" xml:"associations"`
}

// AssociateRequest 关联或解除关联卷类型请求
type AssociateRequest struct {
	ProjectID string `uri:"project_id"  json:"-" xml:"-"`
	ID        string `uri:"id"          json:"-" xml:"-"`
	VolTypeID string `form:"vol_type_id" json:"-" xml:"-"`
}

// DisassociateAllRequest 解除所有关联请求
type DisassociateAllRequest struct {
	ProjectID string `uri:"project_id" json:"-" xml:"-"`
	ID        string `uri:"id"         json:"-" xml:"-"`
}
