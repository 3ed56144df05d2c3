package config

type Auth struct {
	// JWT 簽名密鑰
	JWTSecret string `mapstructure:"JWT_SECRET" json:"jwt_secret" yaml:"jwt_secret"`
	// Token 有效時數（小時），預設 168（七天）
	TokenTTLHours int `mapstructure:"TOKEN_TTL_HOURS" json:"token_ttl_hours" yaml:"token_ttl_hours"`
	// 登入限流：視窗秒數與次數上限
	LoginRateWindowSec int `mapstructure:"LOGIN_RATE_WINDOW_SEC" json:"login_rate_window_sec" yaml:"login_rate_window_sec"`
	LoginRateLimit     int `mapstructure:"LOGIN_RATE_LIMIT" json:"login_rate_limit" yaml:"login_rate_limit"`
}
