// Package qrcode 生成预订凭证二维码，到店出示办理入住
package qrcode

import (
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"io"

	"github.com/skip2/go-qrcode"
)

// RecoveryLevel 纠错级别
type RecoveryLevel int

const (
	// Low 7% 纠错
	Low RecoveryLevel = iota
	// Medium 15% 纠错
	Medium
	// High 25% 纠错
	High
	// Highest 30% 纠错
	Highest
)

// Generator 二维码生成器
type Generator struct {
	size          int           // 边长（像素）
	recoveryLevel RecoveryLevel // 纠错级别
}

// Option 生成器选项
type Option func(*Generator)

// WithSize 设置二维码边长
func WithSize(size int) Option {
	return func(g *Generator) {
		g.size = size
	}
}

// WithRecoveryLevel 设置纠错级别
func WithRecoveryLevel(level RecoveryLevel) Option {
	return func(g *Generator) {
		g.recoveryLevel = level
	}
}

// NewGenerator 创建二维码生成器，默认 256px、中等纠错
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		size:          256,
		recoveryLevel: Medium,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *Generator) toQRCodeLevel() qrcode.RecoveryLevel {
	switch g.recoveryLevel {
	case Low:
		return qrcode.Low
	case Medium:
		return qrcode.Medium
	case High:
		return qrcode.High
	case Highest:
		return qrcode.Highest
	default:
		return qrcode.Medium
	}
}

// Generate 生成二维码图片
func (g *Generator) Generate(content string) (image.Image, error) {
	qr, err := qrcode.New(content, g.toQRCodeLevel())
	if err != nil {
		return nil, fmt.Errorf("创建二维码失败: %w", err)
	}
	return qr.Image(g.size), nil
}

// GeneratePNG 生成 PNG 格式二维码
func (g *Generator) GeneratePNG(content string) ([]byte, error) {
	return qrcode.Encode(content, g.toQRCodeLevel(), g.size)
}

// GenerateDataURL 生成 Data URL 格式的二维码，供前端直接嵌入 img 标签
func (g *Generator) GenerateDataURL(content string) (string, error) {
	data, err := g.GeneratePNG(content)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(data), nil
}

// WriteToWriter 将二维码以 PNG 写入 Writer
func (g *Generator) WriteToWriter(content string, w io.Writer) error {
	img, err := g.Generate(content)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}
