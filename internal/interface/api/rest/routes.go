package rest

const (
	// api
	RouteApiV1 = "/api/v1"

	// auth
	RouteAuth  = RouteApiV1 + "/auth"
	RouteLogin = RouteAuth + "/login"

	// users
	RouteUsers        = RouteApiV1 + "/users"
	RouteMe           = RouteUsers + "/me"
	RouteMyPassword   = RouteMe + "/password"
	RouteAccountTypes = RouteApiV1 + "/account-types"

	// images
	RouteImages         = RouteApiV1 + "/images"
	RouteImage          = RouteImages + "/:image_id"
	RouteTemporaryLinks = RouteApiV1 + "/temporary-links"
	RouteTemporaryLink  = RouteTemporaryLinks + "/:file_kind/:file_id"

	FormFieldImage      = "image"
	FormFieldName       = "name"
	QueryExpirationTime = "expiration_time_seconds"

	// ops
	RouteHealth  = RouteApiV1 + "/healthz"
	RouteMetrics = RouteApiV1 + "/metrics"
)
