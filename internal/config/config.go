package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 全局配置结构体（完全匹配config.yaml）
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`    // 服务器配置
	Postgres  PostgresConfig  `mapstructure:"postgres"`  // PostgreSQL配置
	Narrator  NarratorConfig  `mapstructure:"narrator"`  // 岗位画像生成（OpenRouter）配置
	Benchmark BenchmarkConfig `mapstructure:"benchmark"` // 基准配置默认值
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port int    `mapstructure:"port"` // 服务端口
	Mode string `mapstructure:"mode"` // Gin运行模式：debug/release/test
}

// PostgresConfig PostgreSQL数据库配置
type PostgresConfig struct {
	DSN             string        `mapstructure:"dsn"`               // 连接DSN
	MaxOpenConns    int           `mapstructure:"max_open_conns"`    // 最大打开连接数
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`    // 最大空闲连接数
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"` // 连接最大存活时间
}

// NarratorConfig 岗位画像生成配置（OpenRouter 为 OpenAI 兼容接口）
type NarratorConfig struct {
	BaseURL    string   `mapstructure:"base_url"`    // API基础地址
	APIKey     string   `mapstructure:"api_key"`     // API密钥（建议走环境变量）
	Models     []string `mapstructure:"models"`      // 按顺序尝试的模型列表
	Timeout    int      `mapstructure:"timeout"`     // 请求超时（秒）
	RetryCount int      `mapstructure:"retry_count"` // 单个模型的最大尝试次数
	Proxy      string   `mapstructure:"proxy"`       // 代理地址
	AppURL     string   `mapstructure:"app_url"`     // OpenRouter归因头：HTTP-Referer
	AppName    string   `mapstructure:"app_name"`    // OpenRouter归因头：X-Title
}

// BenchmarkConfig 基准配置默认值（岗位级别、权重JSON）
type BenchmarkConfig struct {
	DefaultJobLevel string `mapstructure:"default_job_level"` // 默认岗位级别
	DefaultWeights  string `mapstructure:"default_weights"`   // 默认TGV权重JSON（仅透传存储，不参与计算）
}

// 未配置模型列表时的兜底顺序
var defaultModels = []string{
	"deepseek/deepseek-r1-0528:free",
	"mistralai/mistral-small-3.2-24b-instruct:free",
	"openai/gpt-oss-20b:free",
}

// LoadConfig 加载配置文件（config/config.yaml），敏感项从 .env 覆盖（不提交 git）
func LoadConfig() (*Config, error) {
	// 1. 加载 .env（若存在），env 中的值会覆盖 config.yaml 中同名字段
	_ = godotenv.Load() // 忽略错误（.env 可不存在）

	// 2. 读取 config.yaml
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	viper.SetTypeByDefaultValue(true)
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}

	// 3. 敏感字段：用 env 覆盖（优先级 env > yaml）
	overrideFromEnv(&cfg)

	if len(cfg.Narrator.Models) == 0 {
		cfg.Narrator.Models = defaultModels
	}
	if cfg.Narrator.BaseURL == "" {
		cfg.Narrator.BaseURL = "https://openrouter.ai/api/v1"
	}
	return &cfg, nil
}

// overrideFromEnv 用环境变量覆盖敏感配置
func overrideFromEnv(cfg *Config) {
	if v := os.Getenv("PG_DSN"); v != "" {
		cfg.Postgres.DSN = v
	}
	if v := os.Getenv("OPENROUTER_API_KEY"); v != "" {
		cfg.Narrator.APIKey = v
	}
	// 模型优先级：单模型env > CSV列表env > yaml配置 > 默认列表
	if v := os.Getenv("OPENROUTER_MODELS"); v != "" {
		var models []string
		for _, m := range strings.Split(v, ",") {
			if m = strings.TrimSpace(m); m != "" {
				models = append(models, m)
			}
		}
		if len(models) > 0 {
			cfg.Narrator.Models = models
		}
	}
	if v := os.Getenv("OPENROUTER_MODEL"); v != "" {
		cfg.Narrator.Models = []string{v}
	}
	if v := os.Getenv("OPENROUTER_PROXY"); v != "" {
		cfg.Narrator.Proxy = v
	}
	if v := os.Getenv("DEFAULT_JOB_LEVEL"); v != "" {
		cfg.Benchmark.DefaultJobLevel = v
	}
	if v := os.Getenv("DEFAULT_WEIGHTS_JSON"); v != "" {
		cfg.Benchmark.DefaultWeights = v
	}
}
