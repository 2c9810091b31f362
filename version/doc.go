// Package version reports build information for the order service binary.
//
//	go build -ldflags "-X github.com/kbukum/order-service/version.Version=v0.0.1"
package version
