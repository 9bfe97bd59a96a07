package maimai

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/ZhiheZier/MaimaiDXBot/utils/client"

	log "github.com/sirupsen/logrus"
	"github.com/syndtr/goleveldb/leveldb"
	lutil "github.com/syndtr/goleveldb/leveldb/util"
)

// Alias 单曲别名集合
type Alias struct {
	SongID string   `json:"song_id"`
	Name   string   `json:"name"`
	Alias  []string `json:"alias"`
}

// AliasVote 别名服务器上的一条进行中投票
type AliasVote struct {
	Tag        string
	SongID     int64
	ApplyAlias string
	AgreeVotes int64
	Votes      int64
}

var (
	aliasMutex  sync.RWMutex
	aliasRemote []Alias // 别名服务器数据
	aliasLocal  []Alias // 本地别名库

	localStore *leveldb.DB
)

const localAliasKeyPrefix = "alias:"

// SetLocalStore 指定本地别名的持久化存储
func SetLocalStore(db *leveldb.DB) {
	localStore = db
	loadLocalAliases()
}

func loadLocalAliases() {
	if localStore == nil {
		return
	}
	var locals []Alias
	iter := localStore.NewIterator(lutil.BytesPrefix([]byte(localAliasKeyPrefix)), nil)
	for iter.Next() {
		var a Alias
		if err := json.Unmarshal(iter.Value(), &a); err != nil {
			continue
		}
		locals = append(locals, a)
	}
	iter.Release()
	aliasMutex.Lock()
	aliasLocal = locals
	aliasMutex.Unlock()
}

// RefreshAliases 从别名服务器拉取全部别名
func RefreshAliases() error {
	c := client.NewHttpClient(&client.HttpOptions{TryTime: 3, Timeout: 30 * time.Second})
	res, err := c.GetGJson(AliasAPI + "/maimaidxalias")
	if err != nil {
		return err
	}
	content := res.Get("content")
	if !content.Exists() {
		return ErrServer
	}
	var remotes []Alias
	for _, item := range content.Array() {
		a := Alias{
			SongID: item.Get("SongID").String(),
			Name:   item.Get("Name").String(),
		}
		for _, name := range item.Get("Alias").Array() {
			a.Alias = append(a.Alias, name.String())
		}
		remotes = append(remotes, a)
	}
	if len(remotes) == 0 {
		return ErrServer
	}
	aliasMutex.Lock()
	aliasRemote = remotes
	aliasMutex.Unlock()
	log.Infof("别名库更新完成，共%d条", len(remotes))
	return nil
}

// AliasesByID 查询指定曲目的全部别名（远程+本地）
func AliasesByID(songID string) []string {
	aliasMutex.RLock()
	defer aliasMutex.RUnlock()
	var names []string
	for _, a := range aliasRemote {
		if a.SongID == songID {
			names = append(names, a.Alias...)
		}
	}
	for _, a := range aliasLocal {
		if a.SongID == songID {
			names = append(names, a.Alias...)
		}
	}
	return names
}

// SongIDsByAlias 按别名反查曲目ID，别名比较忽略大小写与首尾空白
func SongIDsByAlias(name string) []string {
	name = strings.ToLower(strings.TrimSpace(name))
	if len(name) == 0 {
		return nil
	}
	aliasMutex.RLock()
	defer aliasMutex.RUnlock()
	ids := make(map[string]struct{})
	var res []string
	match := func(list []Alias) {
		for _, a := range list {
			for _, alias := range a.Alias {
				if strings.ToLower(strings.TrimSpace(alias)) == name {
					if _, ok := ids[a.SongID]; !ok {
						ids[a.SongID] = struct{}{}
						res = append(res, a.SongID)
					}
					break
				}
			}
		}
	}
	match(aliasRemote)
	match(aliasLocal)
	return res
}

// HasRemoteAlias 检查别名服务器上该曲目是否已有此别名
func HasRemoteAlias(songID, name string) (bool, error) {
	c := client.NewHttpClient(&client.HttpOptions{TryTime: 2, Timeout: 15 * time.Second})
	res, err := c.GetGJson(fmt.Sprintf("%s/getsongsalias/%s", AliasAPI, songID))
	if err != nil {
		return false, ErrServer
	}
	name = strings.ToLower(name)
	for _, alias := range res.Get("content.Alias").Array() {
		if strings.ToLower(alias.String()) == name {
			return true, nil
		}
	}
	return false, nil
}

// AddLocalAlias 向本地别名库添加别名并落盘
func AddLocalAlias(songID, name string) error {
	name = strings.ToLower(name)
	aliasMutex.Lock()
	defer aliasMutex.Unlock()
	var target *Alias
	for i := range aliasLocal {
		if aliasLocal[i].SongID == songID {
			target = &aliasLocal[i]
			break
		}
	}
	if target == nil {
		aliasLocal = append(aliasLocal, Alias{SongID: songID})
		target = &aliasLocal[len(aliasLocal)-1]
	}
	for _, alias := range target.Alias {
		if alias == name {
			return nil
		}
	}
	target.Alias = append(target.Alias, name)
	if localStore == nil {
		return nil
	}
	data, err := json.Marshal(*target)
	if err != nil {
		return err
	}
	return localStore.Put([]byte(localAliasKeyPrefix+songID), data, nil)
}

// ApplyAlias 向别名服务器申请新别名，返回服务器答复
func ApplyAlias(songID, name string, uid, groupID int64) (string, error) {
	body, _ := json.Marshal(map[string]interface{}{
		"SongID":     songID,
		"ApplyAlias": name,
		"ApplyUID":   uid,
		"GroupID":    groupID,
	})
	c := client.NewHttpClient(&client.HttpOptions{TryTime: 2, Timeout: 15 * time.Second})
	res, err := c.PostGJson(AliasAPI+"/applyalias", body)
	if err != nil {
		return "", ErrServer
	}
	content := res.Get("content")
	if !content.Exists() {
		return "", ErrServer
	}
	return content.String(), nil
}

// AgreeAlias 为指定投票投下同意票，返回服务器答复
func AgreeAlias(tag string, uid int64) (string, error) {
	body, _ := json.Marshal(map[string]interface{}{
		"Tag":       strings.ToUpper(tag),
		"AgreeUser": uid,
	})
	c := client.NewHttpClient(&client.HttpOptions{TryTime: 2, Timeout: 15 * time.Second})
	res, err := c.PostGJson(AliasAPI+"/agreeuser", body)
	if err != nil {
		return "", ErrServer
	}
	content := res.Get("content")
	if !content.Exists() {
		return "", ErrServer
	}
	return content.String(), nil
}

// AliasVotes 查询正在进行的别名投票
func AliasVotes() ([]AliasVote, error) {
	c := client.NewHttpClient(&client.HttpOptions{TryTime: 2, Timeout: 15 * time.Second})
	res, err := c.GetGJson(AliasAPI + "/getaliasstatus")
	if err != nil {
		return nil, ErrServer
	}
	var votes []AliasVote
	for _, item := range res.Get("content").Array() {
		votes = append(votes, AliasVote{
			Tag:        item.Get("Tag").String(),
			SongID:     item.Get("SongID").Int(),
			ApplyAlias: item.Get("ApplyAlias").String(),
			AgreeVotes: item.Get("AgreeVotes").Int(),
			Votes:      item.Get("Votes").Int(),
		})
	}
	return votes, nil
}
