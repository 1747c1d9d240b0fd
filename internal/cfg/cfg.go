package cfg

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/jimlawless/whereami"
	"github.com/sainaman-tech/storefront-backend/pkg/e"
	"github.com/sainaman-tech/storefront-backend/pkg/logger"
)

type Config struct {
	Http    *HTTPConfig
	Db      *PGDBCfg
	Redis   *RedisCfg
	Minio   *MinIOCfg
	Kafka   *KafkaCfg
	Auth    *AuthCfg
	Catalog *CatalogCfg
}

type HTTPConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type PGDBCfg struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisCfg struct {
	Addr        string
	Password    string
	User        string
	DB          int
	MaxRetries  int
	DialTimeout time.Duration
	Timeout     time.Duration
	CartTTL     time.Duration // время жизни корзины в Redis
	CatalogTTL  time.Duration // время жизни кэша каталога
}

type MinIOCfg struct {
	MinioEndpoint     string // Адрес конечной точки Minio
	BucketName        string // Название конкретного бакета в Minio
	MinioRootUser     string // Имя пользователя для доступа к Minio
	MinioRootPassword string // Пароль для доступа к Minio
	MinioUseSSL       bool
	UploadImagesLimit int           // Лимит одновременных загрузок в S3
	PresignExpiry     time.Duration // время жизни подписанной ссылки на загрузку
}

type KafkaCfg struct {
	Topic             string
	Brokers           []string
	NetworkMode       string
	Partitions        int
	ReplicationFactor int
}

type AuthCfg struct {
	AdminEmail string        // email администратора магазина
	SessionTTL time.Duration // время жизни bearer-сессии
	BcryptCost int
}

// CatalogCfg задаёт пороги показа каталога до раскрытия полного списка.
// Порог выбирается по ширине вьюпорта, переданной клиентом.
type CatalogCfg struct {
	RevealNarrow   int // видимых товаров на узком экране
	RevealWide     int // видимых товаров на широком экране
	NarrowMaxWidth int // граница «узкого» вьюпорта в px
}

// Load безопасно загружает конфигурацию и возвращает ошибку в случае неудачи.
func Load(log logger.Logger) (*Config, error) {
	db, err := loadPGDBCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	http, err := loadHTTPConfig(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	redis, err := loadRedisCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	minio, err := loadMinIOCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	kafka, err := loadKafkaCfg()
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	auth, err := loadAuthCfg()
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	catalog, err := loadCatalogCfg()
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return &Config{
		Http:    http,
		Db:      db,
		Redis:   redis,
		Minio:   minio,
		Kafka:   kafka,
		Auth:    auth,
		Catalog: catalog,
	}, nil
}

func loadHTTPConfig(log logger.Logger) (*HTTPConfig, error) {
	const (
		defaultPort         = "5001"
		defaultReadTimeout  = 5 * time.Second
		defaultWriteTimeout = 10 * time.Second
		defaultIdleTimeout  = 60 * time.Second
	)

	port := getEnvOrDefault("HTTP_PORT", defaultPort)

	readTimeout, err := parseDurationEnv("HTTP_READ_TIMEOUT", defaultReadTimeout)
	if err != nil {
		log.Errorf(err, "invalid HTTP_READ_TIMEOUT")
		return nil, err
	}

	writeTimeout, err := parseDurationEnv("HTTP_WRITE_TIMEOUT", defaultWriteTimeout)
	if err != nil {
		log.Errorf(err, "invalid HTTP_WRITE_TIMEOUT")
		return nil, err
	}

	idleTimeout, err := parseDurationEnv("KEEP_ALIVE", defaultIdleTimeout)
	if err != nil {
		log.Errorf(err, "invalid KEEP_ALIVE")
		return nil, err
	}

	return &HTTPConfig{
		Port:         port,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}, nil
}

func loadPGDBCfg(log logger.Logger) (*PGDBCfg, error) {
	const (
		defaultHost    = "localhost"
		defaultPort    = "5432"
		defaultSSLMode = "disable"
	)

	user := getEnv("POSTGRES_USER")
	if user == "" {
		err := fmt.Errorf("POSTGRES_USER is required")
		log.Errorf(err, "missing POSTGRES_USER")
		return nil, err
	}

	password := getEnv("POSTGRES_PASSWORD")
	if password == "" {
		err := fmt.Errorf("POSTGRES_PASSWORD is required")
		log.Errorf(err, "missing POSTGRES_PASSWORD")
		return nil, err
	}

	dbName := getEnv("POSTGRES_DB")
	if dbName == "" {
		err := fmt.Errorf("POSTGRES_DB is required")
		log.Errorf(err, "missing POSTGRES_DB")
		return nil, err
	}

	return &PGDBCfg{
		Host:     getEnvOrDefault("POSTGRES_HOST", defaultHost),
		Port:     getEnvOrDefault("POSTGRES_PORT", defaultPort),
		User:     user,
		Password: password,
		DBName:   dbName,
		SSLMode:  getEnvOrDefault("SSL_MODE", defaultSSLMode),
	}, nil
}

func loadRedisCfg(log logger.Logger) (*RedisCfg, error) {
	const (
		defaultAddr         = "localhost:6379"
		defaultDB           = 0
		defaultMaxRetries   = 3
		defaultDialTimeout  = 5 * time.Second
		defaultReadTimeout  = 3 * time.Second
		defaultWriteTimeout = 3 * time.Second
		defaultCartTTL      = 30 * 24 * time.Hour
		defaultCatalogTTL   = 3 * time.Minute
	)

	addr := getEnvOrDefault("REDIS_ADDR", defaultAddr)
	password := getEnv("REDIS_PASSWORD")
	user := getEnv("REDIS_USER")

	dbStr := getEnvOrDefault("REDIS_DB_ID", strconv.Itoa(defaultDB))
	db, err := strconv.Atoi(dbStr)
	if err != nil {
		log.Errorf(err, "invalid REDIS_DB_ID")
		return nil, err
	}

	maxRetries, err := parseIntEnv("MAX_RETRIES", defaultMaxRetries)
	if err != nil {
		log.Errorf(err, "invalid MAX_RETRIES")
		return nil, err
	}

	dialTimeout, err := parseDurationEnv("DIAL_TIMEOUT", defaultDialTimeout)
	if err != nil {
		log.Errorf(err, "invalid DIAL_TIMEOUT")
		return nil, err
	}

	readTimeout, err := parseDurationEnv("READ_TIMEOUT", defaultReadTimeout)
	if err != nil {
		log.Errorf(err, "invalid READ_TIMEOUT")
		return nil, err
	}

	writeTimeout, err := parseDurationEnv("WRITE_TIMEOUT", defaultWriteTimeout)
	if err != nil {
		log.Errorf(err, "invalid WRITE_TIMEOUT")
		return nil, err
	}

	cartTTL, err := parseDurationEnv("CART_TTL", defaultCartTTL)
	if err != nil {
		log.Errorf(err, "invalid CART_TTL")
		return nil, err
	}

	catalogTTL, err := parseDurationEnv("CATALOG_TTL", defaultCatalogTTL)
	if err != nil {
		log.Errorf(err, "invalid CATALOG_TTL")
		return nil, err
	}

	timeout := readTimeout
	if writeTimeout > timeout {
		timeout = writeTimeout
	}

	return &RedisCfg{
		Addr:        addr,
		Password:    password,
		User:        user,
		DB:          db,
		MaxRetries:  maxRetries,
		DialTimeout: dialTimeout,
		Timeout:     timeout,
		CartTTL:     cartTTL,
		CatalogTTL:  catalogTTL,
	}, nil
}

func loadMinIOCfg(log logger.Logger) (*MinIOCfg, error) {
	const (
		defaultUseSSL        = false
		defaultEndpoint      = "minio:9000"
		defaultPresignExpiry = 15 * time.Minute
	)

	useSSL, err := strconv.ParseBool(getEnvOrDefault("MINIO_USE_SSL", strconv.FormatBool(defaultUseSSL)))
	if err != nil {
		log.Errorf(err, "invalid MINIO_USE_SSL")
		return nil, err
	}

	presignExpiry, err := parseDurationEnv("PRESIGN_EXPIRY", defaultPresignExpiry)
	if err != nil {
		log.Errorf(err, "invalid PRESIGN_EXPIRY")
		return nil, err
	}

	return &MinIOCfg{
		MinioEndpoint:     getEnvOrDefault("MINIO_ENDPOINT", defaultEndpoint),
		BucketName:        getEnv("BUCKET_NAME"),
		MinioRootUser:     getEnv("MINIO_ROOT_USER"),
		MinioRootPassword: getEnv("MINIO_ROOT_PASSWORD"),
		MinioUseSSL:       useSSL,
		UploadImagesLimit: 10,
		PresignExpiry:     presignExpiry,
	}, nil
}

func loadKafkaCfg() (*KafkaCfg, error) {
	const (
		defaultPartitions        = 3
		defaultReplicationFactor = 1
		defaultNetworkMode       = "tcp"
		defaultTopic             = "storefront.orders"
	)

	brokerStr := os.Getenv("KAFKA_BROKERS")
	if brokerStr == "" {
		return nil, fmt.Errorf("KAFKA_BROKERS environment variable is required")
	}
	brokers := strings.Split(brokerStr, ",")

	topic := getEnvOrDefault("KAFKA_TOPIC", defaultTopic)

	partitions, err := parseIntEnv("KAFKA_PARTITIONS", defaultPartitions)
	if err != nil {
		return nil, e.Wrap("KAFKA_PARTITIONS", err)
	}

	replicationFactor, err := parseIntEnv("REPLICATION_FACTOR", defaultReplicationFactor)
	if err != nil {
		return nil, e.Wrap("REPLICATION_FACTOR", err)
	}

	networkMode := getEnvOrDefault("KAFKA_NETWORK_MODE", defaultNetworkMode)

	return &KafkaCfg{
		Brokers:           brokers,
		Topic:             topic,
		Partitions:        partitions,
		ReplicationFactor: replicationFactor,
		NetworkMode:       networkMode,
	}, nil
}

func loadAuthCfg() (*AuthCfg, error) {
	const (
		defaultSessionTTL = 7 * 24 * time.Hour
		defaultBcryptCost = 10
	)

	adminEmail := getEnv("ADMIN_EMAIL")
	if adminEmail == "" {
		return nil, fmt.Errorf("ADMIN_EMAIL environment variable is required")
	}

	sessionTTL, err := parseDurationEnv("SESSION_TTL", defaultSessionTTL)
	if err != nil {
		return nil, e.Wrap("SESSION_TTL", err)
	}

	bcryptCost, err := parseIntEnv("BCRYPT_COST", defaultBcryptCost)
	if err != nil {
		return nil, e.Wrap("BCRYPT_COST", err)
	}

	return &AuthCfg{
		AdminEmail: adminEmail,
		SessionTTL: sessionTTL,
		BcryptCost: bcryptCost,
	}, nil
}

func loadCatalogCfg() (*CatalogCfg, error) {
	const (
		defaultRevealNarrow   = 4
		defaultRevealWide     = 6
		defaultNarrowMaxWidth = 640
	)

	revealNarrow, err := parseIntEnv("REVEAL_NARROW", defaultRevealNarrow)
	if err != nil {
		return nil, e.Wrap("REVEAL_NARROW", err)
	}

	revealWide, err := parseIntEnv("REVEAL_WIDE", defaultRevealWide)
	if err != nil {
		return nil, e.Wrap("REVEAL_WIDE", err)
	}

	narrowMaxWidth, err := parseIntEnv("NARROW_MAX_WIDTH", defaultNarrowMaxWidth)
	if err != nil {
		return nil, e.Wrap("NARROW_MAX_WIDTH", err)
	}

	return &CatalogCfg{
		RevealNarrow:   revealNarrow,
		RevealWide:     revealWide,
		NarrowMaxWidth: narrowMaxWidth,
	}, nil
}

// RevealLimit возвращает порог показа для переданной ширины вьюпорта.
// Нулевая или отрицательная ширина трактуется как широкий экран.
func (c *CatalogCfg) RevealLimit(viewportWidth int) int {
	if viewportWidth > 0 && viewportWidth < c.NarrowMaxWidth {
		return c.RevealNarrow
	}

	return c.RevealWide
}

// getEnv возвращает значение переменной окружения.
// Возвращает пустую строку, если переменная не задана.
func getEnv(key string) string {
	return os.Getenv(key)
}

// getEnvOrDefault возвращает значение переменной окружения или значение по умолчанию.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return defaultValue
}

// parseDurationEnv считывает длительность или возвращает значение по умолчанию.
func parseDurationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	if v := os.Getenv(key); v != "" {
		return time.ParseDuration(v)
	}

	return defaultValue, nil
}

func parseIntEnv(key string, defaultValue int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue, nil
	}

	intValue, err := strconv.Atoi(v)
	if err != nil {
		return defaultValue, e.ErrIncorrectEnvVariable
	}

	return intValue, nil
}
