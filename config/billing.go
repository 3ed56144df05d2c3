package config

type Billing struct {
	// 計費匯率模式：current（以消費者目前費率回溯計算，預設）或 snapshot（以配送當下快照費率）
	RateMode string `mapstructure:"RATE_MODE" json:"rate_mode" yaml:"rate_mode"`
}
