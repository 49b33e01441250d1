package grpcserver

import (
	"context"

	"google.golang.org/grpc"

	"musicreg/pkg/models"
)

const ServiceName = "musicreg.RegistrationService"

type GetRegistrationRequest struct {
	ID int64 `json:"id"`
}

type GetRegistrationResponse struct {
	Registration models.Registration `json:"registration"`
}

type ListRegistrationsRequest struct {
	Genre  string `json:"genre,omitempty"`
	Limit  int32  `json:"limit,omitempty"`
	Offset int32  `json:"offset,omitempty"`
}

type ListRegistrationsResponse struct {
	Total  int32                 `json:"total"`
	Limit  int32                 `json:"limit"`
	Offset int32                 `json:"offset"`
	Items  []models.Registration `json:"items"`
}

// RegistrationServer is the server API of musicreg.RegistrationService.
type RegistrationServer interface {
	GetRegistration(context.Context, *GetRegistrationRequest) (*GetRegistrationResponse, error)
	ListRegistrations(context.Context, *ListRegistrationsRequest) (*ListRegistrationsResponse, error)
}

func RegisterRegistrationServer(s grpc.ServiceRegistrar, srv RegistrationServer) {
	s.RegisterService(&RegistrationServiceDesc, srv)
}

var RegistrationServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*RegistrationServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GetRegistration", Handler: getRegistrationHandler},
		{MethodName: "ListRegistrations", Handler: listRegistrationsHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "musicreg/registration.proto",
}

func getRegistrationHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(GetRegistrationRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(RegistrationServer).GetRegistration(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + ServiceName + "/GetRegistration"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(RegistrationServer).GetRegistration(ctx, req.(*GetRegistrationRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func listRegistrationsHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(ListRegistrationsRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(RegistrationServer).ListRegistrations(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + ServiceName + "/ListRegistrations"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(RegistrationServer).ListRegistrations(ctx, req.(*ListRegistrationsRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// Client calls musicreg.RegistrationService with the JSON codec.
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func (c *Client) GetRegistration(ctx context.Context, in *GetRegistrationRequest, opts ...grpc.CallOption) (*GetRegistrationResponse, error) {
	out := new(GetRegistrationResponse)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := c.cc.Invoke(ctx, "/"+ServiceName+"/GetRegistration", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListRegistrations(ctx context.Context, in *ListRegistrationsRequest, opts ...grpc.CallOption) (*ListRegistrationsResponse, error) {
	out := new(ListRegistrationsResponse)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := c.cc.Invoke(ctx, "/"+ServiceName+"/ListRegistrations", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
