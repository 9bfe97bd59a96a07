package MaimaiDXBot

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/ZhiheZier/MaimaiDXBot/utils"
	"github.com/ZhiheZier/MaimaiDXBot/utils/consts"

	"github.com/fsnotify/fsnotify"
	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	zero "github.com/wdvxdr1123/ZeroBot"
)

func init() {
	pflag.StringP("server", "s", "ws://127.0.0.1:6700/", "the websocket server address")
	pflag.StringSliceP("superuser", "u", []string{}, "all superusers' id")
	pflag.StringP("nickname", "n", "mai", "the bot's nickname")
	pflag.StringP("log", "l", "info", "the level of logging")
	pflag.BoolP("daemon", "d", false, "run the bot as a service")
	pflag.Parse()
	// 从命令行读取
	_ = viper.BindPFlag("superuser", pflag.Lookup("superuser"))
	_ = viper.BindPFlag("nickname", pflag.Lookup("nickname"))
	// 后端配置
	_ = viper.BindPFlag("server.address", pflag.Lookup("server"))
	viper.SetDefault("server.token", "")
	// 日志配置
	_ = viper.BindPFlag("log.level", pflag.Lookup("log"))
	viper.SetDefault("log.date", 30)
	// 数据库配置
	viper.SetDefault("db.type", "sqlite")
	viper.SetDefault("db.host", "localhost")
	viper.SetDefault("db.port", 5432)
	viper.SetDefault("db.user", "username")
	viper.SetDefault("db.passwd", "password")
	viper.SetDefault("db.name", utils.PathJoin("data", "db", "bot.db"))
	// 其它配置
	viper.SetDefault("tmp.maxcount", 1000)        // 同种类临时文件同时存在的最大数量
	viper.SetDefault(consts.AlwaysCallKey, false) // 是否可以自由调用（完全去除onlytome），不支持热更新
	// 此init会在manager.common前被调用，随后manager.common.init调用DoPreWorks
}

// DoPreWorks 进行全局初始化：读主配置、初始化日志、按需转为服务模式
func DoPreWorks() {
	if err := flushMainConfig(consts.DefaultConfigDir, consts.MainConfigFileName); err != nil {
		log.Fatal("读取主配置失败：", err)
		return
	}
	if err := setupLogger(); err != nil {
		log.Fatal("初始化日志失败：", err)
		return
	}
	CheckDaemon()
}

// 设置日志等级、格式，并按天滚动切割，同时输出至标准输出与文件
func setupLogger() error {
	log.SetLevel(log.InfoLevel)
	if l, ok := flagLToLevel[strings.ToLower(viper.GetString("log.level"))]; ok {
		log.SetLevel(l)
	}
	log.SetFormatter(&utils.SimpleFormatter{})
	logf, err := rotatelogs.New(
		utils.PathJoin(consts.DefaultLogDir, "bot-%Y-%m-%d.log"),
		rotatelogs.WithLinkName(utils.PathJoin(consts.DefaultLogDir, "bot.log")),
		rotatelogs.WithMaxAge(time.Duration(viper.GetInt("log.date"))*24*time.Hour),
		rotatelogs.WithRotationTime(24*time.Hour),
	)
	if err != nil {
		log.Error("创建日志切割文件失败：", err)
		return err
	}
	log.SetOutput(io.MultiWriter(os.Stdout, logf))
	return nil
}

var flagLToLevel = map[string]log.Level{
	"debug":   log.DebugLevel,
	"info":    log.InfoLevel,
	"warn":    log.WarnLevel,
	"warning": log.WarnLevel,
	"error":   log.ErrorLevel,
}

// 从文件和命令行刷新主配置，文件不存在时写入默认配置并提示用户填写
func flushMainConfig(configPath string, configFileName string) error {
	viper.AddConfigPath(configPath)
	viper.SetConfigFile(configFileName)
	fullPath := utils.PathJoin(configPath, configFileName)
	if utils.FileExists(fullPath) { // 已有配置文件：合并后回写，补齐新增配置项
		if err := viper.MergeInConfig(); err != nil {
			log.Error("合并主配置文件失败：", err)
			return err
		}
		_ = viper.WriteConfigAs(fullPath)
	} else {
		if err := viper.SafeWriteConfigAs(fullPath); err != nil {
			log.Error("写入主配置文件失败：", err)
			return err
		}
		log.SetFormatter(&utils.SimpleFormatter{})
		log.Fatalf("初始化配置文件%v完成，请对该配置文件进行配置后，重启本程序", configFileName)
	}
	viper.WatchConfig()
	viper.OnConfigChange(func(e fsnotify.Event) {
		zero.BotConfig.SuperUsers = ConfigSuperUsers()
		zero.BotConfig.NickName = []string{viper.GetString("nickname")}
		_ = setupLogger()
		log.Infof("已从%v重载主配置", e.Name)
	})
	return nil
}

// ConfigSuperUsers 读取superuser配置项并转为QQ号列表，忽略非法项
func ConfigSuperUsers() []int64 {
	var ids []int64
	for _, s := range viper.GetStringSlice("superuser") {
		if id, err := strconv.ParseInt(s, 10, 64); err == nil {
			ids = append(ids, id)
		}
	}
	return ids
}

// CheckDaemon 运行参数包含-d时，以去掉该参数的方式重新启动子进程并退出本进程
func CheckDaemon() {
	var execArgs []string
	needDaemon := false
	for _, arg := range os.Args[1:] {
		if strings.HasPrefix(arg, "-d") || strings.HasPrefix(arg, "--d") {
			needDaemon = true
			continue
		}
		execArgs = append(execArgs, arg)
	}
	if !needDaemon {
		return
	}
	proc := exec.Command(os.Args[0], execArgs...)
	if err := proc.Start(); err != nil {
		panic(err)
	}
	log.Info("PID: ", proc.Process.Pid)
	if err := os.WriteFile("./bot.pid", []byte(fmt.Sprintf("%d", proc.Process.Pid)), 0o644); err != nil {
		log.Errorf("写入PID文件失败：%v", err)
	}
	os.Exit(0)
}
