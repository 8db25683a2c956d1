package rest

const (
	// api
	RouteApiV1 = "/api/v1"

	// auth
	RouteAuth     = RouteApiV1 + "/auth"
	RouteLogin    = RouteAuth + "/login"
	RouteRegister = RouteAuth + "/register"

	// files
	RouteFiles        = RouteApiV1 + "/files"
	RouteFilesLive    = RouteFiles + "/ws"
	RouteFile         = RouteFiles + "/:file_id"
	RouteFileDownload = RouteFile + "/download"
	RouteFileShares   = RouteFile + "/shares"

	// shares
	RouteShares         = RouteApiV1 + "/shares"
	RouteSharesReceived = RouteShares + "/received"
	RouteSharesSent     = RouteShares + "/sent"
	RouteSharesLive     = RouteShares + "/ws"

	// ops
	RouteHealth  = RouteApiV1 + "/healthz"
	RouteMetrics = RouteApiV1 + "/metrics"
)
