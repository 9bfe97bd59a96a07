package images

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/ZhiheZier/MaimaiDXBot/utils"

	"github.com/fogleman/gg"
)

// PasteStringDefault 以默认样式贴文字：默认字体、纯黑、自动换行、左上角定位、居左
func (img *ImageCtx) PasteStringDefault(str string, fontSize, lineSpace float64, x, y, width float64) error {
	img.Push()
	defer img.Pop()
	if err := img.UseDefaultFont(fontSize); err != nil {
		return err
	}
	img.SetRGB(0, 0, 0)
	img.DrawStringWrapped(str, x, y, 0, 0, width, lineSpace, gg.AlignLeft)
	return nil
}

// DrawStringWrapped 重载gg的DrawStringWrapped，保留首尾空格与换行符
func (img *ImageCtx) DrawStringWrapped(s string, x, y, ax, ay, width, lineSpacing float64, align gg.Align) {
	lines := img.WordWrap(s, width)

	// 与MeasureMultilineString的高度算法保持一致
	h := float64(len(lines)) * img.FontHeight() * lineSpacing
	h -= (lineSpacing - 1) * img.FontHeight()

	x -= ax * width
	y -= ay * h
	switch align {
	case gg.AlignLeft:
		ax = 0
	case gg.AlignCenter:
		ax = 0.5
		x += width / 2
	case gg.AlignRight:
		ax = 1
		x += width
	}
	ay = 1
	for _, line := range lines {
		img.DrawStringAnchored(line, x, y, ax, ay)
		y += img.FontHeight() * lineSpacing
	}
}

// WordWrap 重载gg的WordWrap，保留首尾空格与换行符
func (img *ImageCtx) WordWrap(s string, width float64) []string {
	var result []string
	for _, line := range strings.Split(s, "\n") {
		// fields为 文字、空格、文字... 交替序列，偶数下标为文字
		fields := utils.SplitOnSpace(line)
		if len(fields)%2 == 1 {
			fields = append(fields, "")
		}
		x := ""
		for i := 0; i < len(fields); i += 2 {
			w, _ := img.MeasureString(x + fields[i])
			if w > width {
				if x == "" {
					result = append(result, fields[i])
					continue
				}
				result = append(result, x)
				x = ""
			}
			x += fields[i] + fields[i+1]
		}
		result = append(result, x)
	}
	return result
}

var colorMap = map[string]string{
	"white":  "#ffffff",
	"black":  "#000000",
	"gray":   "#a4b0be",
	"red":    "#e74c3c",
	"blue":   "#3498db",
	"green":  "#2ecc71",
	"yellow": "#ffd43b",
}

var rgbFuncReg = regexp.MustCompile(`rgba?\((\d{1,3}),(\d{1,3}),(\d{1,3})(,\d{1,3}\.?\d*)?\)`)

// SetColorAuto 自动识别颜色参数并设置画笔颜色，
// 支持颜色名、十六进制、rgb()/rgba()形式，无法识别时设为纯白
func (img *ImageCtx) SetColorAuto(colorStr string) {
	if hex, ok := colorMap[colorStr]; ok {
		img.SetHexColor(hex)
		return
	}
	if strings.HasPrefix(colorStr, "#") {
		img.SetHexColor(colorStr)
		return
	}
	colorStr = strings.ToLower(colorStr)
	if strings.HasPrefix(colorStr, "rgb") {
		colorStr = strings.ReplaceAll(strings.ReplaceAll(colorStr, " ", ""), "\t", "")
		sub := rgbFuncReg.FindStringSubmatch(colorStr)
		if len(sub) <= 4 {
			return
		}
		r, _ := strconv.ParseInt(sub[1], 10, 32)
		g, _ := strconv.ParseInt(sub[2], 10, 32)
		b, _ := strconv.ParseInt(sub[3], 10, 32)
		img.SetRGBA255(int(r), int(g), int(b), int(parseAlpha(sub[4])))
		return
	}
	img.SetHexColor("#ffffff")
}

// parseAlpha 解析rgba()的第四个参数，支持0~255整数或0~1小数，缺省为255
func parseAlpha(s string) int64 {
	if len(s) > 0 {
		s = s[1:] // 去除前导逗号
	}
	if len(s) == 0 {
		return 255
	}
	if strings.Contains(s, ".") {
		fa, _ := strconv.ParseFloat(s+"0", 32)
		return int64(255.0 * fa)
	}
	a, _ := strconv.ParseInt(s, 10, 32)
	return a
}
