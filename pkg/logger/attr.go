package logger

import "log/slog"

// Error creates an attribute for a single error under the key "error".
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Component records the emitting component under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Username records the caller under the key "username".
func Username(name string) slog.Attr {
	return slog.String("username", name)
}

// TenantID records a tenant identifier under the key "tenant_id".
func TenantID(id int64) slog.Attr {
	return slog.Int64("tenant_id", id)
}

// WorkOrderID records a work order under the key "work_order_id".
func WorkOrderID(id int64) slog.Attr {
	return slog.Int64("work_order_id", id)
}

// Scheme records the authentication scheme under the key "auth_scheme".
func Scheme(scheme string) slog.Attr {
	return slog.String("auth_scheme", scheme)
}
