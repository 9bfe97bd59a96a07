package consts

const AlwaysCallKey = "plugins-always-call" // 配置无需onlytome的插件时，所用的配置项Key

// 通过Plugin Config来控制一些基本能力的 配置项

const PluginConfigCDKey = "cd" // 配置各插件CD限流时长时，所用的配置项Key

const PluginConfigAdminLevelKey = "adminlevel" // 配置各插件管理员权限等级时，所用的配置项Key

const AbortLogIgnoreSymbol = "[ignore]" // hook阻断执行时，panic信息的前缀，日志中会忽略
