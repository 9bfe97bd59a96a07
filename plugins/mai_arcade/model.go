package mai_arcade

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Arcade 机厅信息与当前排卡人数
type Arcade struct {
	ID       uint   `gorm:"primaryKey"`
	Name     string `gorm:"uniqueIndex;size:128"`
	Location string
	Num      int    // 机台数量
	Alias    string // 别名列表，以|分隔
	Person   int    // 当前排卡人数
	By       string // 最后更新人
	Time     string // 最后更新时间
}

// ArcadeSub 群订阅机厅
type ArcadeSub struct {
	GroupID  int64 `gorm:"primaryKey;autoIncrement:false"`
	ArcadeID uint  `gorm:"primaryKey;autoIncrement:false"`
}

// Aliases 解析别名列表
func (a *Arcade) Aliases() []string {
	var res []string
	for _, alias := range strings.Split(a.Alias, "|") {
		if len(alias) > 0 {
			res = append(res, alias)
		}
	}
	return res
}

// HasAlias 是否含有指定别名（忽略大小写）
func (a *Arcade) HasAlias(name string) bool {
	name = strings.ToLower(name)
	for _, alias := range a.Aliases() {
		if strings.ToLower(alias) == name {
			return true
		}
	}
	return false
}

func (a *Arcade) setPerson(person int, by string) {
	if person < 0 {
		person = 0
	}
	a.Person = person
	a.By = by
	a.Time = time.Now().Format("2006-01-02 15:04:05")
}

func findByFullName(db *gorm.DB, name string) ([]Arcade, error) {
	var res []Arcade
	err := db.Where("name = ?", name).Find(&res).Error
	return res, err
}

func findByID(db *gorm.DB, id uint) (*Arcade, error) {
	var a Arcade
	err := db.Limit(1).Find(&a, "id = ?", id).Error
	if err != nil || a.ID == 0 {
		return nil, err
	}
	return &a, nil
}

// searchByName 按店名或别名模糊查找
func searchByName(db *gorm.DB, name string) ([]Arcade, error) {
	var all []Arcade
	if err := db.Find(&all).Error; err != nil {
		return nil, err
	}
	name = strings.ToLower(name)
	var res []Arcade
	for _, a := range all {
		if strings.Contains(strings.ToLower(a.Name), name) || a.HasAlias(name) {
			res = append(res, a)
		}
	}
	return res, nil
}

// groupArcades 群订阅的全部机厅
func groupArcades(db *gorm.DB, groupID int64) ([]Arcade, error) {
	var subs []ArcadeSub
	if err := db.Where("group_id = ?", groupID).Find(&subs).Error; err != nil {
		return nil, err
	}
	var res []Arcade
	for _, sub := range subs {
		if a, err := findByID(db, sub.ArcadeID); err == nil && a != nil {
			res = append(res, *a)
		}
	}
	return res, nil
}
