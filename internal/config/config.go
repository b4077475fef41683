package config

import (
	"os"
	"time"
)

// BoundingRegion 数据集的有效坐标范围，超出范围的记录在加载时丢弃
type BoundingRegion struct {
	MinLat float64
	MaxLat float64
	MinLng float64
	MaxLng float64
}

// Contains reports whether the point lies inside the region (inclusive).
func (r BoundingRegion) Contains(lat, lng float64) bool {
	return lat >= r.MinLat && lat <= r.MaxLat && lng >= r.MinLng && lng <= r.MaxLng
}

// Config 应用配置
type Config struct {
	Port     string
	DataPath string
	DataURL  string

	// 源数据列名（大小写不敏感，带备选列名推断）
	LatCol  string
	LngCol  string
	DateCol string
	TypeCol string

	Region BoundingRegion

	// 各端点的缓存 TTL
	CrimesTTL   time.Duration
	ClustersTTL time.Duration
	RoutesTTL   time.Duration

	// 查询限制
	CrimeLimitDefault       int
	CrimeLimitMax           int
	ClusterKDefault         int
	ClusterKMax             int
	ClusterMaxPointsDefault int
	ClusterMaxPointsMax     int

	// 路线分析
	OSRMBaseURL    string
	DefaultBufferM float64
	MinBufferM     float64
	MaxBufferM     float64

	// 犯罪类型严重度表（0~1），按子串匹配解析，未命中默认 0.5
	Severity map[string]float64
}

// Load 加载配置
func Load() *Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = ":8080"
	}

	dataPath := os.Getenv("DATA_PATH")
	if dataPath == "" {
		dataPath = "./data/major_crime_indicators.csv"
	}

	osrm := os.Getenv("OSRM_BASE_URL")
	if osrm == "" {
		osrm = "http://router.project-osrm.org"
	}

	return &Config{
		Port:     port,
		DataPath: dataPath,
		DataURL:  os.Getenv("DATA_URL"),

		LatCol:  envOr("LAT_COL", "LAT_WGS84"),
		LngCol:  envOr("LNG_COL", "LONG_WGS84"),
		DateCol: envOr("DATE_COL", "OCC_DATE"),
		TypeCol: envOr("TYPE_COL", "MCI_CATEGORY"),

		// 多伦多范围
		Region: BoundingRegion{
			MinLat: 43.0,
			MaxLat: 44.5,
			MinLng: -80.5,
			MaxLng: -78.5,
		},

		CrimesTTL:   60 * time.Second,
		ClustersTTL: 300 * time.Second,
		RoutesTTL:   300 * time.Second,

		CrimeLimitDefault:       5000,
		CrimeLimitMax:           50000,
		ClusterKDefault:         30,
		ClusterKMax:             200,
		ClusterMaxPointsDefault: 50000,
		ClusterMaxPointsMax:     200000,

		OSRMBaseURL:    osrm,
		DefaultBufferM: 180.0,
		MinBufferM:     50.0,
		MaxBufferM:     500.0,

		Severity: map[string]float64{
			"Assault":         1.0,
			"Robbery":         0.9,
			"Break and Enter": 0.7,
			"Theft":           0.6,
			"Auto Theft":      0.6,
		},
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
