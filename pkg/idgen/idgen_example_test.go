package idgen_test

import (
	"fmt"
	"strings"

	"github.com/jimyag/qosd/pkg/idgen"
)

func ExampleGenerator_GenerateQoSSpecsID() {
	gen := idgen.New()

	// 生成 QoS 规格 ID
	id, err := gen.GenerateQoSSpecsID()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	// 验证格式
	if strings.HasPrefix(id, "qos-") && len(id) == 24 {
		fmt.Println("QoS specs ID format is correct")
	}
	// Output: QoS specs ID format is correct
}

func ExampleGenerator_GenerateVolumeTypeID() {
	gen := idgen.New()

	// 生成卷类型 ID
	id, err := gen.GenerateVolumeTypeID()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	if strings.HasPrefix(id, "vtype-") && len(id) == 26 {
		fmt.Println("Volume type ID format is correct")
	}
	// Output: Volume type ID format is correct
}

func ExampleGenerator_GenerateID() {
	gen := idgen.New()

	// 连续生成的 ID 递增
	first, _ := gen.GenerateID()
	second, _ := gen.GenerateID()
	fmt.Println(second > first)
	// Output: true
}

func ExampleGenerateQoSSpecsID() {
	// 使用默认生成器，字符串 ID 的字典序与生成顺序一致
	first, _ := idgen.GenerateQoSSpecsID()
	second, _ := idgen.GenerateQoSSpecsID()
	fmt.Println(first < second)
	// Output: true
}
