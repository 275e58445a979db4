package idgen

import (
	"fmt"
	"sync"
	"time"

	"github.com/sony/sonyflake"
)

// idDigits 数字部分固定宽度，保证字符串字典序与生成顺序一致
const idDigits = 20

// Generator 递增 ID 生成器
// 使用 Sonyflake 算法生成全局唯一且递增的 ID
type Generator struct {
	sf *sonyflake.Sonyflake
}

var (
	defaultGenerator     *Generator
	defaultGeneratorOnce sync.Once
)

func initDefaultGenerator() {
	defaultGenerator = New()
}

// DefaultGenerator 返回默认的 ID 生成器
func DefaultGenerator() *Generator {
	defaultGeneratorOnce.Do(initDefaultGenerator)
	return defaultGenerator
}

// New 创建新的 ID 生成器
func New() *Generator {
	sf := sonyflake.NewSonyflake(sonyflake.Settings{
		StartTime: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	if sf == nil {
		// 无法获取机器 ID 时退回到固定机器 ID
		sf = sonyflake.NewSonyflake(sonyflake.Settings{
			StartTime: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			MachineID: func() (uint16, error) { return 1, nil },
		})
	}

	return &Generator{
		sf: sf,
	}
}

// generateIDWithPrefix 生成带前缀的 ID
func (g *Generator) generateIDWithPrefix(prefix, errorMsg string) (string, error) {
	id, err := g.sf.NextID()
	if err != nil {
		return "", fmt.Errorf("%s: %w", errorMsg, err)
	}
	return fmt.Sprintf("%s-%0*d", prefix, idDigits, id), nil
}

// GenerateQoSSpecsID 生成 QoS 规格 ID（格式：qos-{递增 ID}）
func (g *Generator) GenerateQoSSpecsID() (string, error) {
	return g.generateIDWithPrefix("qos", "generate qos specs ID")
}

// GenerateVolumeTypeID 生成卷类型 ID（格式：vtype-{递增 ID}）
func (g *Generator) GenerateVolumeTypeID() (string, error) {
	return g.generateIDWithPrefix("vtype", "generate volume type ID")
}

// GenerateID 生成通用递增 ID
func (g *Generator) GenerateID() (uint64, error) {
	return g.sf.NextID()
}

// GenerateQoSSpecsID 使用默认生成器生成 QoS 规格 ID
func GenerateQoSSpecsID() (string, error) {
	return DefaultGenerator().GenerateQoSSpecsID()
}

// GenerateVolumeTypeID 使用默认生成器生成卷类型 ID
func GenerateVolumeTypeID() (string, error) {
	return DefaultGenerator().GenerateVolumeTypeID()
}

// GenerateID 使用默认生成器生成通用递增 ID
func GenerateID() (uint64, error) {
	return DefaultGenerator().GenerateID()
}
