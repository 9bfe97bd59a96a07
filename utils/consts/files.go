package consts

const DefaultTTFPath = "./ttf/zh-cn.ttf"

const DefaultTTFDir = "./ttf"
const DefaultLogDir = "./log"
const DefaultConfigDir = "."
const DefaultLevelDBDir = "./data/leveldb"

const MaimaiDataDir = "./data/maimai"
const MusicDataFile = MaimaiDataDir + "/music_data.json"
const ChartStatsFile = MaimaiDataDir + "/chart_stats.json"
const CoverImageDir = MaimaiDataDir + "/cover"

const TempRootDir = "./data/tmp"
const TempImageDir = TempRootDir + "/img"

const MainConfigFileName = "config-main.yaml"
const PluginConfigFileName = "config-plugin.yaml"
