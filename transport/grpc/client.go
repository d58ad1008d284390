// Package grpctransport dispatches wire requests over a gRPC
// connection using a JSON message codec. It is deliberately thin:
// authentication, pooling and retry belong to the infrastructure that
// hands out the connection target.
package grpctransport

import (
	"context"
	"encoding/json"
	"fmt"
	"unicode"

	"google.golang.org/grpc"
	"google.golang.org/grpc/encoding"
)

const service = "/docstore.v1.Datastore/"

type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error)      { return json.Marshal(v) }
func (jsonCodec) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }
func (jsonCodec) Name() string                       { return "json" }

func init() { encoding.RegisterCodec(jsonCodec{}) }

type Transport struct {
	conn *grpc.ClientConn
}

func Dial(target string, opts ...grpc.DialOption) (*Transport, error) {
	if len(opts) == 0 {
		opts = append(opts, grpc.WithInsecure())
	}
	cc, err := grpc.Dial(target, opts...)
	if err != nil {
		return nil, err
	}
	return &Transport{conn: cc}, nil
}

// Dispatch invokes one unary call for the named operation. Errors come
// back verbatim; retry policy is not this layer's business.
func (t *Transport) Dispatch(ctx context.Context, op string, req, resp any) error {
	if op == "" {
		return fmt.Errorf("grpctransport: empty operation name")
	}
	return t.conn.Invoke(ctx, service+export(op), req, resp,
		grpc.CallContentSubtype(jsonCodec{}.Name()))
}

func (t *Transport) Close() error { return t.conn.Close() }

// export upper-cases the first rune: "runQuery" → "RunQuery".
func export(op string) string {
	r := []rune(op)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
