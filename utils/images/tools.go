package images

import (
	"fmt"
	"image"
	"math/rand"
	"os"
	"strings"

	"github.com/ZhiheZier/MaimaiDXBot/utils"
	"github.com/ZhiheZier/MaimaiDXBot/utils/consts"

	"github.com/golang/freetype/truetype"
	uuid "github.com/satori/go.uuid"
	log "github.com/sirupsen/logrus"
	"github.com/wdvxdr1123/ZeroBot/message"
)

var defaultFont *truetype.Font

// ParseFont 解析字体文件，生成truetype.Font结构
func ParseFont(path string) (*truetype.Font, error) {
	fontBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := truetype.Parse(fontBytes)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// GetDefaultFont 获取默认字体，若默认字体不存在，会自动寻找，但仍可能为nil
func GetDefaultFont() *truetype.Font {
	if defaultFont == nil {
		font, err := ParseFont(consts.DefaultTTFPath) // 加载默认字体文件
		if err != nil {                               // 加载失败，从默认字体目录中尝试遍历
			rd, _ := os.ReadDir(consts.DefaultTTFDir)
			for _, file := range rd {
				if file.IsDir() {
					continue
				}
				font, err = ParseFont(utils.PathJoin(consts.DefaultTTFDir, file.Name()))
				if err == nil {
					log.Infof("成功加载默认字体文件：%v", file.Name())
					break
				}
			}
		}
		if err != nil || font == nil { // 全部失败
			log.Warnf("加载默认字体文件(%v)失败 err: %v", consts.DefaultTTFDir, err)
			return nil
		}
		defaultFont = font
	}
	return defaultFont
}

// UseDefaultFont 使用指定字号的默认字体
func (img *ImageCtx) UseDefaultFont(fontSize float64) error {
	font := GetDefaultFont()
	if font == nil {
		return fmt.Errorf("default font is nil")
	}
	face := truetype.NewFace(font, &truetype.Options{
		Size: fontSize,
	})
	img.SetFontFace(face)
	return nil
}

// MeasureMultilineString 测量多行文字在当前字体下的长宽
func (img *ImageCtx) MeasureMultilineString(str string, lineSpace float64) (width, height float64) {
	lines := strings.Split(str, "\n")

	// sync h formula with DrawStringWrapped
	height = float64(len(lines)) * img.FontHeight() * lineSpace
	height -= (lineSpace - 1) * img.FontHeight()

	for _, line := range lines {
		adv, _ := img.MeasureString(line)
		if adv > width {
			width = adv
		}
	}
	return width, height
}

// MeasureStringDefault 测量str在默认情况（默认字体、分行）下的长宽
func MeasureStringDefault(str string, fontSize, lineSpace float64) (float64, float64) {
	img := NewImageCtx(1, 1)
	_ = img.UseDefaultFont(fontSize)
	return img.MeasureMultilineString(str, lineSpace)
}

// SaveTemp 以随机文件名保存至临时图片目录，返回图片完整路径
func (img *ImageCtx) SaveTemp() (string, error) {
	if _, err := utils.MakeDir(consts.TempImageDir); err != nil {
		return "", err
	}
	filename := uuid.NewV4().String() + ".png"
	path := utils.PathJoin(consts.TempImageDir, filename)
	if err := img.SavePNG(path); err != nil {
		return "", err
	}
	return path, nil
}

// GenMessageAuto 自动保存为临时图片文件并生成图片消息
func (img *ImageCtx) GenMessageAuto() (message.MessageSegment, error) {
	path, err := img.SaveTemp()
	if err != nil {
		return message.MessageSegment{}, err
	}
	return utils.GetImageFileMsg(path)
}

// GenStringMsg 以默认方式生成纯文字图片消息，若生成失败，则返回message.Text
func GenStringMsg(str string) message.MessageSegment {
	fontSize := 18.0
	w, h := MeasureStringDefault(str, fontSize, 1.3)
	img := NewImageCtxWithBGColor(int(w)+10, int(h)+20, "white")
	err := img.PasteStringDefault(str, fontSize, 1.3, 5, 10, w)
	if err != nil {
		log.Warnf("Gen Image String Msg err: %v", err)
		return message.Text(str)
	}
	msg, err := img.GenMessageAuto()
	if err != nil {
		log.Warnf("Gen Image String Msg err: %v", err)
		return message.Text(str)
	}
	return msg
}

// CropRandom 从原图中随机裁剪出w×h的子图，原图尺寸不足时返回原图
func CropRandom(src image.Image, w, h int) image.Image {
	bounds := src.Bounds()
	if bounds.Dx() <= w || bounds.Dy() <= h {
		return src
	}
	x := bounds.Min.X + rand.Intn(bounds.Dx()-w)
	y := bounds.Min.Y + rand.Intn(bounds.Dy()-h)
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < w; i++ {
		for j := 0; j < h; j++ {
			dst.Set(i, j, src.At(x+i, y+j))
		}
	}
	return dst
}
