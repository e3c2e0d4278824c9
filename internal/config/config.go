package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App        App        `mapstructure:",squash"`
	Server     Server     `mapstructure:",squash"`
	Database   Database   `mapstructure:",squash"`
	AdPlatform AdPlatform `mapstructure:",squash"`
	AdSync     AdSync     `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

// AdPlatform configura o endpoint remoto de sincronização de gasto de anúncios.
// Cada plataforma é acionada pelo mesmo endpoint, variando o path.
type AdPlatform struct {
	SyncBaseURL    string `mapstructure:"ad_platform_sync_base_url"`
	AccessToken    string `mapstructure:"ad_platform_access_token"`
	TimeoutSeconds int    `mapstructure:"ad_platform_timeout_seconds"`
}

// AdSync configura o agendador de sincronização de gasto de anúncios
type AdSync struct {
	CronSchedule      string `mapstructure:"ad_sync_cron"`
	LookbackDays      int    `mapstructure:"ad_sync_lookback_days"`
	MaxConcurrentJobs int    `mapstructure:"ad_sync_max_concurrent_jobs"`
	Enabled           bool   `mapstructure:"ad_sync_enabled"`
	AutoSyncOnBoot    bool   `mapstructure:"ad_sync_auto_on_boot"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/profit")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("AD_PLATFORM_SYNC_BASE_URL", "https://functions.profit-manager.app/ad-spend-sync")
	viper.SetDefault("AD_PLATFORM_ACCESS_TOKEN", "your_access_token") // ONLY LOCAL
	viper.SetDefault("AD_PLATFORM_TIMEOUT_SECONDS", 30)

	// Defaults para sincronização de gasto de anúncios
	viper.SetDefault("AD_SYNC_CRON", "0 3 * * *")      // Todos os dias às 3h da manhã
	viper.SetDefault("AD_SYNC_LOOKBACK_DAYS", 7)       // 7 dias para buscar dados
	viper.SetDefault("AD_SYNC_MAX_CONCURRENT_JOBS", 3) // 3 tarefas concorrentes
	viper.SetDefault("AD_SYNC_ENABLED", false)         // Habilitar sincronização agendada
	viper.SetDefault("AD_SYNC_AUTO_ON_BOOT", false)    // Disparar uma sincronização na subida

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	// Configurar valores padrão
	SetDefaults()

	// Configurar o Viper
	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv() // Isso permite que o Viper leia variáveis de ambiente

	// Tentar ler o arquivo .env com o Viper (opcional, já que usamos godotenv)
	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	// Obter diretório atual
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	// Tentar várias localizações possíveis para o arquivo .env
	locations := []string{
		filepath.Join(cwd, ".env"),               // Diretório atual
		filepath.Join(filepath.Dir(cwd), ".env"), // Diretório pai
		filepath.Join(cwd, "../.env"),            // Diretório acima
		filepath.Join(cwd, "../../.env"),         // Dois diretórios acima
	}

	for _, location := range locations {
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
