package main

import (
	bot "github.com/ZhiheZier/MaimaiDXBot"
	"github.com/ZhiheZier/MaimaiDXBot/manager"
	"github.com/ZhiheZier/MaimaiDXBot/utils/consts"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	zero "github.com/wdvxdr1123/ZeroBot"
	"github.com/wdvxdr1123/ZeroBot/driver"

	// 基础插件
	_ "github.com/ZhiheZier/MaimaiDXBot/basic/ban"
	_ "github.com/ZhiheZier/MaimaiDXBot/basic/limiter"

	// maimai插件
	_ "github.com/ZhiheZier/MaimaiDXBot/plugins/mai_alias"
	_ "github.com/ZhiheZier/MaimaiDXBot/plugins/mai_arcade"
	_ "github.com/ZhiheZier/MaimaiDXBot/plugins/mai_base"
	_ "github.com/ZhiheZier/MaimaiDXBot/plugins/mai_guess"
	_ "github.com/ZhiheZier/MaimaiDXBot/plugins/mai_score"
	_ "github.com/ZhiheZier/MaimaiDXBot/plugins/mai_search"
	_ "github.com/ZhiheZier/MaimaiDXBot/plugins/mai_table"
)

func main() {
	// 全局初始化工作在manager.init()中进行（包括初始化命令行参数）
	// 初始化数据库
	err := manager.SetupDatabase(manager.DBConfig{
		Type:   viper.GetString("db.type"),
		Host:   viper.GetString("db.host"),
		Port:   viper.GetInt("db.port"),
		User:   viper.GetString("db.user"),
		Passwd: viper.GetString("db.passwd"),
		Name:   viper.GetString("db.name"),
	})
	if err != nil {
		log.Fatal("SetupDatabase err: ", err)
	}
	// 刷新插件配置
	err = manager.FlushConfig(consts.DefaultConfigDir, consts.PluginConfigFileName)
	if err != nil {
		log.Fatal("FlushConfig err: ", err)
	}
	// 启动服务
	zero.RunAndBlock(zero.Config{
		NickName:      []string{viper.GetString("nickname")},
		CommandPrefix: "",
		SuperUsers:    bot.ConfigSuperUsers(),
		Driver: []zero.Driver{
			driver.NewWebSocketClient(viper.GetString("server.address"), viper.GetString("server.token")),
		},
	}, nil)
}
