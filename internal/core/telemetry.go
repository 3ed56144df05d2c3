package core

// ─── Trace ─────────────────────────────────────────────────────────────────────

type TraceSpanName string

const (
	SpanAuthMiddleware     TraceSpanName = "middleware.auth"
	SpanRoleMiddleware     TraceSpanName = "middleware.role"
	SpanCorsMiddleware     TraceSpanName = "middleware.cors"
	SpanLoggerMiddleware   TraceSpanName = "middleware.logger"
	SpanResponseMiddleware TraceSpanName = "middleware.response"
)

type LoggerRequestMeta struct {
	Method     string            `trace:"request.method"`
	Path       string            `trace:"request.path"`
	FullPath   string            `trace:"request.full_path"`
	Query      string            `trace:"request.query"`
	Body       string            `trace:"request.body"`
	Scheme     string            `trace:"http.scheme"`
	Host       string            `trace:"http.host"`
	UserAgent  string            `trace:"http.user_agent"`
	ContentLen int64             `trace:"http.request_content_length"`
	Proto      string            `trace:"http.flavor"`
	ClientIP   string            `trace:"net.peer.ip"`
	Headers    map[string]string `trace:"http.request.header"`
	Params     map[string]string `trace:"http.request.param"`
}

type TraceHttpServerMeta struct {
	// request side
	ClientAddr        string `trace:"client.address"`
	HttpRequestMethod string `trace:"http.request.method"`
	HttpRoute         string `trace:"http.route"`
	UrlPath           string `trace:"http.request.path"`
	UrlScheme         string `trace:"http.request.url.scheme"`
	UserAgent         string `trace:"user_agent.original"`
	ServerAddress     string `trace:"server.address"`
	NetworkPeerAddr   string `trace:"network.peer.address"`
	NetworkPeerPort   int    `trace:"network.peer.port"`
	NetworkProtoVer   string `trace:"network.protocol.version"`
	SpanTraceID       string `trace:"span.trace_id"`
	HttpStatusCode    int    `trace:"http.response.status_code"`
}

type TraceResponseMeta struct {
	Path       string  `trace:"http.path"`
	Method     string  `trace:"http.method"`
	Status     int     `trace:"http.status_code"`
	Message    string  `trace:"response.message"`
	DurationMs float64 `trace:"response.latency_ms"`
	Data       string  `trace:"response.data_preview"`
}

type TracePanicMeta struct {
	Path       string  `trace:"http.path"`
	Method     string  `trace:"http.method"`
	ClientIP   string  `trace:"http.client_ip"`
	UserAgent  string  `trace:"http.user_agent"`
	DurationMs float64 `trace:"http.duration_ms"`
	Message    string  `trace:"panic.message"`
	Stack      string  `trace:"panic.stack"`
	Status     int     `trace:"http.status"`
}

type TraceAuthMeta struct {
	PrincipalID string `trace:"auth.principal_id"`
	Role        string `trace:"auth.role"`
	Status      string `trace:"auth.status"`
}

type TraceRateLimitMeta struct {
	Key       string `trace:"ratelimit.key"`
	Limit     int    `trace:"ratelimit.limit"`
	Remaining int    `trace:"ratelimit.remaining"`
	Blocked   bool   `trace:"ratelimit.blocked"`
}

type TraceRecordDeliveryMeta struct {
	ConsumerID string  `trace:"delivery.consumer_id"`
	EmployeeID string  `trace:"delivery.employee_id"`
	Date       string  `trace:"delivery.date"`
	Quantity   float64 `trace:"delivery.quantity"`
	QuotaCheck string  `trace:"delivery.quota_check"`
}

type TraceMilkEntryMeta struct {
	Date           string  `trace:"entry.date"`
	TotalCollected float64 `trace:"entry.total_collected"`
	TotalAllocated float64 `trace:"entry.total_allocated"`
	Allocations    int     `trace:"entry.allocations"`
}

// ─── Metric ────────────────────────────────────────────────────────────────────

type MetricName string
type MetricLabelName string

const (
	MetricHttpRequestsTotal        MetricName = "http_requests_total"
	MetricHttpRequestDuration      MetricName = "http_request_duration_seconds"
	MetricDeliveriesTotal          MetricName = "deliveries_recorded_total"
	MetricQuotaRejectionsTotal     MetricName = "quota_rejections_total"
	MetricAllocationsVerifiedTotal MetricName = "allocations_verified_total"
)

const (
	MetricLabelEndpoint MetricLabelName = "endpoint"
	MetricLabelStatus   MetricLabelName = "status"
	MetricLabelReason   MetricLabelName = "reason"
)
