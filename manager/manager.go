package manager

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ZhiheZier/MaimaiDXBot/utils"
	"github.com/ZhiheZier/MaimaiDXBot/utils/consts"
	"github.com/ZhiheZier/MaimaiDXBot/utils/rules"

	"github.com/fsnotify/fsnotify"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
	"github.com/syndtr/goleveldb/leveldb"
	levelopt "github.com/syndtr/goleveldb/leveldb/opt"
	zero "github.com/wdvxdr1123/ZeroBot"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

type PluginHook func(condition *PluginCondition, ctx *zero.Ctx) error
type FileHook func(event fsnotify.Event) error

// 支持的关系型数据库类型
const (
	MySQL      = "mysql"
	PostgreSQL = "postgresql"
	SQLite     = "sqlite"
)

// DBConfig 数据库连接配置
type DBConfig struct {
	Type   string // 数据库类型
	Host   string
	Port   int
	User   string
	Passwd string
	Name   string // 数据库名，SQLite时为数据库文件路径
}

// PluginManager 插件管理器，持有引擎、配置与各数据库连接
type PluginManager struct {
	engine   *zero.Engine // zeroBot引擎
	configs  *viper.Viper // 插件配置
	db       *gorm.DB
	dbConfig DBConfig
	leveldb  *leveldb.DB

	plugins     map[string]*PluginProxy // 插件key -> 插件代理
	preHooks    []PluginHook
	postHooks   []PluginHook
	configHooks []FileHook    // 配置文件变更Hook
	models      []interface{} // 待AutoMigrate的模型
}

// NewPluginManager 新建插件管理器
func NewPluginManager() *PluginManager {
	m := &PluginManager{
		engine:  zero.New(),
		configs: viper.New(),
		plugins: make(map[string]*PluginProxy),
	}
	m.engine.UsePreHandler(rules.SkipGuildMessage) // zeroBot暂无法正常回复频道消息，先全部忽略
	m.engine.UsePreHandler(m.preHandlerWithHook)
	m.engine.UsePostHandler(m.postHandlerWithHook)
	return m
}

// RegisterPlugin 注册插件，返回插件代理，用于添加事件动作、读写配置、获取插件锁、添加定时任务
func (manager *PluginManager) RegisterPlugin(info PluginInfo) *PluginProxy {
	thisPkgName := utils.GetPkgNameByFunc(NewPluginManager)
	key := utils.CallerPackageName(thisPkgName) // 以调用方包名作为插件key
	if len(info.Name) == 0 {
		log.Errorf("插件注册失败：<%s>未设置Name", key)
		return nil
	}
	if _, ok := manager.plugins[key]; ok {
		log.Errorf("插件注册失败：插件%s已注册过", key)
		return nil
	}
	proxy := &PluginProxy{
		key: key,
		u:   manager,
		c: PluginCondition{
			Key:        key,
			PluginInfo: info,
		},
	}
	manager.plugins[key] = proxy
	log.Infof("成功注册插件：%s", proxy.key)
	return proxy
}

// FlushConfig 从文件刷新所有插件配置，文件不存在时写入默认配置，并开始监听文件变更
func (manager *PluginManager) FlushConfig(configPath string, configFileName string) error {
	manager.configs.AddConfigPath(configPath)
	manager.configs.SetConfigFile(configFileName)
	fullPath := filepath.Join(configPath, configFileName)
	if utils.FileExists(fullPath) { // 已有配置文件：合并后回写，补齐新增配置项
		if err := manager.configs.MergeInConfig(); err != nil {
			log.Errorf("读取插件配置文件失败：%v", err)
			return err
		}
		_ = manager.configs.WriteConfigAs(fullPath)
	} else {
		if err := manager.configs.SafeWriteConfigAs(fullPath); err != nil {
			log.Errorf("写入插件配置文件失败：%v", err)
			return err
		}
	}
	manager.callAllConfigChangeHooks(fsnotify.Event{
		Name: fullPath,
		Op:   fsnotify.Create,
	})
	manager.configs.WatchConfig()
	manager.configs.OnConfigChange(func(in fsnotify.Event) {
		manager.callAllConfigChangeHooks(in)
		log.Infof("已从%v重载插件配置", in.Name)
	})
	return nil
}

func (manager *PluginManager) callAllConfigChangeHooks(in fsnotify.Event) {
	manager.flushAllAdminLevelFromConfig()
	for _, hook := range manager.configHooks {
		if err := hook(in); err != nil {
			log.Errorf("处理配置文件(%v)变更时出错：%v", in.Name, err)
		}
	}
}

// flushAllAdminLevelFromConfig 按配置文件刷新各插件的管理员权限等级，
// 插件名.adminlevel 配置项优先于代码中预设的info.AdminLevel
func (manager *PluginManager) flushAllAdminLevelFromConfig() {
	for _, plugin := range manager.GetAllPluginConditions() {
		if plugin == nil {
			continue
		}
		levelI := manager.getConfig(fmt.Sprintf("plugins.%s", plugin.Key), consts.PluginConfigAdminLevelKey)
		if levelI == nil {
			continue
		}
		plugin.AdminLevel = cast.ToInt(levelI)
		if plugin.AdminLevel == 0 {
			log.Infof("依据配置文件，清除%v插件的管理员权限等级，非群管理员也可使用", plugin.Key)
		} else {
			log.Infof("依据配置文件，重设%v插件的管理员权限等级为%v", plugin.Key, plugin.AdminLevel)
		}
	}
}

// SetupDatabase 初始化关系型数据库与K-V数据库，随后迁移各插件注册的模型
func (manager *PluginManager) SetupDatabase(config DBConfig) error {
	config.Type = strings.ToLower(config.Type)
	manager.dbConfig = config
	db, err := openRelationalDB(config)
	if err != nil {
		return err
	}
	manager.db = db
	levelDB, err := leveldb.OpenFile(consts.DefaultLevelDBDir, &levelopt.Options{
		WriteBuffer: 128 * levelopt.KiB,
	})
	if err != nil {
		log.Errorf("初始化GoLevelDB失败：%v", err)
		return err
	}
	manager.leveldb = levelDB
	log.Infof("初始化K-V数据库成功：goleveldb")
	if len(manager.models) > 0 {
		if err := manager.db.AutoMigrate(manager.models...); err != nil {
			log.Errorf("AutoMigrate失败：%v", err)
			return err
		}
	}
	return nil
}

func openRelationalDB(config DBConfig) (*gorm.DB, error) {
	gormC := &gorm.Config{
		Logger: utils.NewGormLogger(),
		NamingStrategy: schema.NamingStrategy{
			TablePrefix:   "t_", // `User`表 -> `t_user`
			SingularTable: true,
		},
	}
	switch config.Type {
	case MySQL:
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			config.User, config.Passwd, config.Host, config.Port, config.Name)
		db, err := gorm.Open(mysql.New(mysql.Config{
			DSN:                       dsn,
			DefaultStringSize:         256,
			SkipInitializeWithVersion: false,
		}), gormC)
		if err != nil {
			log.Errorf("初始化MySQL数据库失败：%v", err)
			return nil, err
		}
		log.Infof("初始化MySQL数据库成功：%v", dsn)
		return db, nil
	case PostgreSQL:
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=disable TimeZone=Asia/Shanghai",
			config.Host, config.User, config.Passwd, config.Name, config.Port)
		db, err := gorm.Open(postgres.Open(dsn), gormC)
		if err != nil {
			log.Errorf("初始化PostgreSQL数据库失败：%v", err)
			return nil, err
		}
		log.Infof("初始化PostgreSQL数据库成功：%v", dsn)
		return db, nil
	case SQLite:
		dsn := config.Name
		prePath, _ := filepath.Split(dsn)
		if len(prePath) > 0 { // 确保数据库文件所在目录存在
			if _, err := utils.MakeDirWithMode(prePath, 0o755); err != nil {
				log.Errorf("创建SQLite数据库目录失败：%v", err)
				return nil, err
			}
		}
		db, err := gorm.Open(sqlite.Open(dsn), gormC)
		if err != nil {
			log.Errorf("初始化SQLite数据库失败：%v", err)
			return nil, err
		}
		log.Infof("初始化SQLite数据库成功：%v", dsn)
		return db, nil
	}
	return nil, errors.New("暂不支持此类型数据库")
}

// RegisterModels 注册数据库模型，在数据库初始化完成后统一AutoMigrate
func (manager *PluginManager) RegisterModels(models ...interface{}) {
	if manager.db != nil { // 数据库已就绪，直接迁移
		if err := manager.db.AutoMigrate(models...); err != nil {
			log.Errorf("AutoMigrate失败：%v", err)
		}
		return
	}
	manager.models = append(manager.models, models...)
}

// GetAllPluginConditions 获取所有插件的详细信息
func (manager *PluginManager) GetAllPluginConditions() []*PluginCondition {
	var res []*PluginCondition
	for _, c := range manager.plugins {
		if c == nil {
			continue
		}
		res = append(res, &c.c)
	}
	return res
}

// GetPluginConditionByKey 按Key获取插件的详细信息
func (manager *PluginManager) GetPluginConditionByKey(key string) *PluginCondition {
	if p, ok := manager.plugins[key]; ok {
		return &p.c
	}
	return nil
}

// AddPreHook 添加插件处理前的hook
func (manager *PluginManager) AddPreHook(hook ...PluginHook) {
	manager.preHooks = append(manager.preHooks, hook...)
}

// AddPostHook 添加插件处理后的hook
func (manager *PluginManager) AddPostHook(hook ...PluginHook) {
	manager.postHooks = append(manager.postHooks, hook...)
}

// WhenConfigFileChange 添加配置文件变更时的hook
func (manager *PluginManager) WhenConfigFileChange(hook ...FileHook) {
	manager.configHooks = append(manager.configHooks, hook...)
}

// GetDB 获取关系型数据库连接
func (manager *PluginManager) GetDB() *gorm.DB {
	return manager.db
}

// GetLevelDB 获取K-V数据库连接
func (manager *PluginManager) GetLevelDB() *leveldb.DB {
	return manager.leveldb
}

// 默认插件管理器
var defaultManager = NewPluginManager()

// getProxyByMatcher 由Matcher定位其从属的插件代理。
// zeroBot处理事件时会copy原matcher，无法直接以matcher为键映射，
// 只能取matcher.Handler所在包名作为插件key
func (manager *PluginManager) getProxyByMatcher(matcher *zero.Matcher) *PluginProxy {
	if manager == nil {
		return nil
	}
	key := utils.GetPkgNameByFunc(matcher.Handler)
	res, ok := manager.plugins[key]
	if !ok {
		log.Warnf("未找到key=%s对应的插件", key)
		return nil
	}
	return res
}

// 前置总Handler，依次调用所有前置hook，任一hook报错则阻断本次处理
func (manager *PluginManager) preHandlerWithHook(ctx *zero.Ctx) bool {
	matcher := ctx.GetMatcher()
	if matcher == nil {
		return true
	}
	proxy := manager.getProxyByMatcher(matcher)
	if proxy == nil { // 非由本管理器注册的matcher
		return true
	}
	log.Infof("[Start] 事件即将被 <%s> 插件处理", proxy.key)
	for _, hook := range manager.preHooks {
		if err := hook(&proxy.c, ctx); err != nil {
			log.Infof("[End] <%s> 插件处理被前置hook取消，原因：%v", proxy.key, err)
			panic(consts.AbortLogIgnoreSymbol + err.Error()) // zeroBot无Abort机制，以panic阻断执行
		}
	}
	log.Infof("[Begin] 前置hook检查完毕，事件正式交由 <%s> 插件处理", proxy.key)
	return true
}

// 后置总Handler，依次调用所有后置hook
func (manager *PluginManager) postHandlerWithHook(ctx *zero.Ctx) {
	matcher := ctx.GetMatcher()
	if matcher == nil {
		return
	}
	proxy := manager.getProxyByMatcher(matcher)
	if proxy == nil {
		return
	}
	log.Infof("[End] 事件被 <%s> 插件处理完毕", proxy.key)
	for _, hook := range manager.postHooks {
		if err := hook(&proxy.c, ctx); err != nil {
			log.Infof("[Tip] 后续matcher已被后置hook阻断，原因：%v", err)
			panic(consts.AbortLogIgnoreSymbol + err.Error()) // zeroBot无Abort机制，以panic阻断执行
		}
	}
}

// 添加配置并设置默认值
func (manager *PluginManager) addConfig(prefix string, key string, defaultValue interface{}) {
	if len(prefix) > 0 {
		key = fmt.Sprintf("%s.%s", prefix, key)
	}
	manager.configs.SetDefault(key, defaultValue)
}

// 获取配置
func (manager *PluginManager) getConfig(prefix string, key string) interface{} {
	if len(prefix) > 0 {
		key = fmt.Sprintf("%s.%s", prefix, key)
	}
	return manager.configs.Get(key)
}
