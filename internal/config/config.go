// config предоставляет структуру конфигурации showcase-сервиса
// и функции загрузки из YAML/ENV с предсказуемым приоритетом.
package config

import (
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config — корневая конфигурация сервиса.
// Приоритет источников:
//  1. явный путь, переданный в MustLoad/Load;
//  2. переменная окружения CONFIG_PATH;
//  3. файл ./local.yaml из рабочей директории;
//  4. переменные окружения.
//
// Конфигурация читается один раз при старте и дальше не меняется.
type Config struct {
	Env      string        `yaml:"env"     env:"ENV"        env-default:"local"`
	HTTP     HTTPConfig    `yaml:"http"`
	Channel  ChannelConfig `yaml:"channel"`
	Fetch    FetchConfig   `yaml:"fetch"`
	Relay    RelayConfig   `yaml:"relay"`
	Timeouts TimeoutConfig `yaml:"timeouts"`
	DB       DBConfig      `yaml:"db"`
	Redis    RedisConfig   `yaml:"redis"`
	Contact  ContactConfig `yaml:"contact"`
	Scene    SceneConfig   `yaml:"scene"`
}

// HTTPConfig — сетевые настройки HTTP-сервера.
type HTTPConfig struct {
	Host string `yaml:"host" env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port string `yaml:"port" env:"HTTP_PORT" env-default:"8080"`
}

// Addr возвращает адрес в формате host:port.
func (h HTTPConfig) Addr() string {
	return net.JoinHostPort(h.Host, h.Port)
}

// ChannelConfig — канал, чьи видео показывает виджет.
type ChannelConfig struct {
	// Handle — handle канала вида "@name".
	Handle string `yaml:"handle" env:"CHANNEL_HANDLE"`
	// ID — идентификатор канала "UC...". Необязателен, но ускоряет RSS.
	ID string `yaml:"id" env:"CHANNEL_ID"`
	// APIKey — ключ YouTube Data API. Пустой ключ отключает API-источник.
	APIKey string `yaml:"api_key" env:"YOUTUBE_API_KEY"`
}

// FetchConfig — порядок и лимиты цепочки источников.
//
// У EnableRSS/EnableScraping нет env-default: cleanenv подставляет default
// поверх нулевого значения, и "false" из YAML превратился бы в true.
// Значения по умолчанию задаёт defaults().
type FetchConfig struct {
	MaxResults     int  `yaml:"max_results"     env:"FETCH_MAX_RESULTS" env-default:"12"`
	EnableRSS      bool `yaml:"enable_rss"      env:"FETCH_ENABLE_RSS"`
	EnableAPI      bool `yaml:"enable_api"      env:"FETCH_ENABLE_API"`
	EnableScraping bool `yaml:"enable_scraping" env:"FETCH_ENABLE_SCRAPING"`
}

// RelayConfig — cross-origin relay, через который идут RSS и скрейпинг.
// Пустой Prefix означает прямые запросы.
type RelayConfig struct {
	Prefix string `yaml:"prefix" env:"RELAY_PREFIX" env-default:"https://api.allorigins.win/raw?url="`
}

// TimeoutConfig — таймауты сервиса.
type TimeoutConfig struct {
	// Request — общий дедлайн HTTP-запроса к сервису.
	Request time.Duration `yaml:"request" env:"REQUEST_TIMEOUT" env-default:"30s"`
	// Fetch — таймаут одного исходящего запроса к источнику.
	Fetch time.Duration `yaml:"fetch" env:"FETCH_TIMEOUT" env-default:"10s"`
}

// DBConfig — подключение к PostgreSQL. Пустой URL отключает хранение сообщений.
type DBConfig struct {
	URL string `yaml:"url" env:"DATABASE_URL"`
}

// RedisConfig — подключение к Redis. Пустой URL отключает rate limit.
type RedisConfig struct {
	URL    string `yaml:"url"    env:"REDIS_URL"`
	Prefix string `yaml:"prefix" env:"REDIS_PREFIX" env-default:"showcase:contact:"`
}

// ContactConfig — ограничения контактной формы.
type ContactConfig struct {
	// Limit — сколько сообщений разрешено с одного адреса за Window.
	Limit  int           `yaml:"limit"  env:"CONTACT_LIMIT"  env-default:"5"`
	Window time.Duration `yaml:"window" env:"CONTACT_WINDOW" env-default:"1h"`
	// MaxMessageLength — верхняя граница длины сообщения в рунах.
	MaxMessageLength int `yaml:"max_message_length" env:"CONTACT_MAX_MESSAGE_LENGTH" env-default:"5000"`
}

// SceneConfig — параметры декоративной сцены героя.
type SceneConfig struct {
	FPS       int   `yaml:"fps"       env:"SCENE_FPS"       env-default:"30"`
	Particles int   `yaml:"particles" env:"SCENE_PARTICLES" env-default:"150"`
	Planets   int   `yaml:"planets"   env:"SCENE_PLANETS"   env-default:"3"`
	Seed      int64 `yaml:"seed"      env:"SCENE_SEED"      env-default:"0"`
	// BoxImage — обложка для коробки; пустое значение оставляет грани без картинки.
	BoxImage string `yaml:"box_image" env:"SCENE_BOX_IMAGE"`
}

// MustLoad — обёртка над Load с panic при ошибке.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load загружает конфигурацию по приоритету:
// 1) явный путь; 2) CONFIG_PATH; 3) ./local.yaml; 4) ENV.
func Load(path string) (*Config, error) {
	cfg := defaults()

	readFile := func(p string) (*Config, error) {
		if _, err := os.Stat(p); err != nil {
			return nil, fmt.Errorf("config file does not exist: %s", p)
		}
		if err := cleanenv.ReadConfig(p, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		return &cfg, nil
	}

	var (
		c   *Config
		err error
	)

	switch envPath := os.Getenv("CONFIG_PATH"); {
	case path != "":
		c, err = readFile(path)
	case envPath != "":
		c, err = readFile(envPath)
	default:
		if _, statErr := os.Stat("local.yaml"); statErr == nil {
			c, err = readFile("local.yaml")
			break
		}
		if err = cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config not found: provide --config, CONFIG_PATH, local.yaml or env vars: %w", err)
		}
		c = &cfg
	}
	if err != nil {
		return nil, err
	}

	c.Channel.Handle = strings.TrimSpace(c.Channel.Handle)
	c.Channel.ID = strings.TrimSpace(c.Channel.ID)
	c.Channel.APIKey = strings.TrimSpace(c.Channel.APIKey)

	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// defaults — значения, которые нельзя выразить через env-default.
func defaults() Config {
	return Config{
		Fetch: FetchConfig{
			EnableRSS:      true,
			EnableScraping: true,
		},
	}
}

// validate — базовая валидация значений.
func (c *Config) validate() error {
	if c.Channel.Handle == "" && c.Channel.ID == "" {
		return fmt.Errorf("channel.handle or channel.id is required")
	}
	if c.Fetch.MaxResults <= 0 {
		return fmt.Errorf("fetch.max_results must be > 0")
	}
	// Data API ограничивает search.list 50 элементами на страницу.
	if c.Fetch.MaxResults > 50 {
		return fmt.Errorf("fetch.max_results must be <= 50")
	}
	if c.Fetch.EnableScraping && c.Channel.Handle == "" {
		return fmt.Errorf("channel.handle is required when scraping is enabled")
	}
	if c.Timeouts.Fetch <= 0 {
		return fmt.Errorf("timeouts.fetch must be > 0")
	}
	if c.Contact.Limit <= 0 {
		return fmt.Errorf("contact.limit must be > 0")
	}
	if c.Contact.Window <= 0 {
		return fmt.Errorf("contact.window must be > 0")
	}
	if c.Contact.MaxMessageLength <= 0 {
		return fmt.Errorf("contact.max_message_length must be > 0")
	}
	if c.Scene.FPS <= 0 || c.Scene.FPS > 120 {
		return fmt.Errorf("scene.fps must be in (0, 120]")
	}
	if c.Scene.Particles < 0 || c.Scene.Planets < 0 {
		return fmt.Errorf("scene.particles and scene.planets must be >= 0")
	}
	return nil
}

// APIEnabled — API-источник включён и у него есть ключ.
func (f FetchConfig) APIEnabled(ch ChannelConfig) bool {
	return f.EnableAPI && ch.APIKey != ""
}
