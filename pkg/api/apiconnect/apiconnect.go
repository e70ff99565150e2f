// Package apiconnect wires the messages in package api to Connect: the
// procedure names, handler constructors and typed clients of the
// GroupService, ExpenseService and CalculatorService.
//
// Every constructor installs api.JSONCodec, so clients and handlers speak
// the Connect protocol with JSON bodies.
package apiconnect

import (
	"connectrpc.com/connect"

	"github.com/mmynk/moneysplits/pkg/api"
)

// Package is the fully-qualified prefix of every service name.
const Package = "moneysplits.v1"

func handlerOptions(opts []connect.HandlerOption) []connect.HandlerOption {
	return append([]connect.HandlerOption{connect.WithCodec(api.JSONCodec{})}, opts...)
}

func clientOptions(opts []connect.ClientOption) []connect.ClientOption {
	return append([]connect.ClientOption{connect.WithCodec(api.JSONCodec{})}, opts...)
}
