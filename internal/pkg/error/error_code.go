package error

const (
	// 0 ~ 999: 成功類別
	SUCCESS = 0 // 200 OK

	// 40000 ~ 49999: 用戶請求錯誤 (400 系列)
	BAD_REQUEST_BODY    = 40000 // 400 - 無效的請求體
	BAD_REQUEST_PARAMS  = 40001 // 400 - 無效的請求參數
	BAD_REQUEST_HEADERS = 40002 // 400 - 無效的請求標頭

	// 40010 ~ 40099: 配奶領域錯誤（仍屬 400）
	DUPLICATE_ENTRY      = 40010 // 400 - 該日期已有集乳記錄
	DUPLICATE_ASSIGNMENT = 40011 // 400 - 消費者已指派給該配送員
	DUPLICATE_DELIVERY   = 40012 // 400 - 該消費者當日已有配送記錄
	OVER_ALLOCATION      = 40013 // 400 - 分配總量超過集乳總量
	QUOTA_EXCEEDED       = 40014 // 400 - 配送量超過剩餘配額
	NOT_ASSIGNED         = 40015 // 400 - 消費者未指派給該配送員

	// 40100 ~ 40399: 驗證與權限錯誤 (401 403 系列)
	UNAUTHORIZED    = 40100 // 401 - 未授權
	INVALID_SESSION = 40101 // 401 - 會話失效
	FORBIDDEN       = 40301 // 403 - 禁止訪問

	// 40400 ~ 40499: 資源錯誤 (404 系列)
	NOT_FOUND = 40400 // 404 - 資源未找到

	// 42900 ~ 42999: 流量限制錯誤 (429 系列)
	RATE_LIMIT_EXCEEDED = 42900 // 429 - 速率限制超過

	// 50000 ~ 50199: 伺服器內部錯誤 (500 系列)
	INTERNAL_ERROR      = 50000 // 500 - 內部錯誤
	DATABASE_ERROR      = 50001 // 500 - 資料庫錯誤
	SERVICE_UNAVAILABLE = 50002 // 503 - 服務暫停
)
