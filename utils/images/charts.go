package images

import (
	"bytes"
	"fmt"
	"image/png"

	"github.com/wcharczuk/go-chart/v2"
)

// FillBarChartDefault 以默认样式绘制柱状图
func (img *ImageCtx) FillBarChartDefault(title string, values []chart.Value) error {
	font := GetDefaultFont()
	if font == nil {
		return fmt.Errorf("default font is nil")
	}
	bar := chart.BarChart{
		Title:    title,
		Font:     font,
		Width:    img.Width(),
		Height:   img.Height(),
		BarWidth: 40,
		Bars:     values,
		XAxis:    chart.Style{FontSize: 10},
		YAxis: chart.YAxis{
			Style:          chart.Style{FontSize: 10},
			ValueFormatter: chart.IntValueFormatter,
		},
	}
	imgBuff := bytes.NewBuffer(nil)
	err := bar.Render(chart.PNG, imgBuff)
	if err != nil {
		return err
	}
	barImg, err := png.Decode(imgBuff)
	if err != nil {
		return err
	}
	img.DrawImage(barImg, 0, 0)
	return nil
}
