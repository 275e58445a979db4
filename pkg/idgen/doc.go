// Package idgen 提供递增 ID 生成器
//
// 使用 Sonyflake 算法生成全局唯一且递增的 ID，数字部分补零到固定宽度，
// 因此按字符串排序即按生成顺序排序。
//
// 生成的 ID 格式：
//   - QoS 规格 ID: qos-{20 位递增数字}
//   - 卷类型 ID: vtype-{20 位递增数字}
//
// 使用方式：
//
//	id, err := idgen.GenerateQoSSpecsID()
//	// id: "qos-00000012345678901234"
//
//	gen := idgen.New()
//	typeID, err := gen.GenerateVolumeTypeID()
package idgen
