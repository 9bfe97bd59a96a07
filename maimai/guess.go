package maimai

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"math/rand"
	"os"
	"strings"

	"github.com/ZhiheZier/MaimaiDXBot/utils/images"
)

// 猜歌从热门乐曲中选曲的范围
const hotSongLimit = 150

var ErrNoSong = errors.New("乐曲数据尚未加载")

// PickHotSong 从热门乐曲中随机挑一首作为谜底
func PickHotSong() (*Music, error) {
	hot := HotSongs(hotSongLimit)
	if len(hot) == 0 {
		return nil, ErrNoSong
	}
	return hot[rand.Intn(len(hot))], nil
}

// BuildHints 生成六条特征提示，顺序随机
func BuildHints(m *Music) [6]string {
	dx := "是"
	if m.Type == "SD" {
		dx = "不是"
	}
	masterDS := 0.0
	if len(m.DS) > 3 {
		masterDS = m.DS[3]
	}
	hints := []string{
		fmt.Sprintf("这首歌的 BPM 是 %d", m.BPM),
		fmt.Sprintf("这首歌的版本是 %s", m.Version),
		fmt.Sprintf("这首歌的曲师是 %s", m.Artist),
		fmt.Sprintf("这首歌的分类是 %s", m.Genre),
		fmt.Sprintf("这首歌%s DX 谱面", dx),
		fmt.Sprintf("这首歌的紫谱定数是 %.1f", masterDS),
	}
	rand.Shuffle(len(hints), func(i, j int) { hints[i], hints[j] = hints[j], hints[i] })
	var res [6]string
	copy(res[:], hints)
	return res
}

// Answers 谜底的全部可接受答案，均为小写
func Answers(m *Music) []string {
	res := []string{m.ID, strings.ToLower(m.Title)}
	for _, alias := range AliasesByID(m.ID) {
		res = append(res, strings.ToLower(strings.TrimSpace(alias)))
	}
	return res
}

// CheckAnswer 判断答案是否命中谜底
func CheckAnswer(m *Music, ans string) bool {
	ans = strings.ToLower(strings.TrimSpace(ans))
	if len(ans) == 0 {
		return false
	}
	for _, a := range Answers(m) {
		if a == ans {
			return true
		}
	}
	return false
}

// CropCover 随机裁取封面的一块区域作为图片提示
func CropCover(m *Music) (image.Image, error) {
	path, err := CoverPath(m.ID)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	src, _, err := image.Decode(file)
	if err != nil {
		return nil, err
	}
	bounds := src.Bounds()
	return images.CropRandom(src, bounds.Dx()/3, bounds.Dy()/3), nil
}
