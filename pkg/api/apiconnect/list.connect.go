// Package apiconnect wires the superlists.v1 services to Connect handlers
// and clients.
package apiconnect

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/superlists/pkg/api"
)

// ListServiceName is the fully-qualified name of the ListService service.
const ListServiceName = "superlists.v1.ListService"

// These constants are the fully-qualified names of the RPCs defined in ListService.
const (
	ListServiceCreateListProcedure = "/superlists.v1.ListService/CreateList"
	ListServiceGetListProcedure    = "/superlists.v1.ListService/GetList"
	ListServiceAddItemProcedure    = "/superlists.v1.ListService/AddItem"
	ListServiceShareListProcedure  = "/superlists.v1.ListService/ShareList"
	ListServiceMyListsProcedure    = "/superlists.v1.ListService/MyLists"
)

// ListServiceClient is a client for the superlists.v1.ListService service.
type ListServiceClient interface {
	CreateList(context.Context, *connect.Request[api.CreateListRequest]) (*connect.Response[api.CreateListResponse], error)
	GetList(context.Context, *connect.Request[api.GetListRequest]) (*connect.Response[api.GetListResponse], error)
	AddItem(context.Context, *connect.Request[api.AddItemRequest]) (*connect.Response[api.AddItemResponse], error)
	ShareList(context.Context, *connect.Request[api.ShareListRequest]) (*connect.Response[api.ShareListResponse], error)
	MyLists(context.Context, *connect.Request[api.MyListsRequest]) (*connect.Response[api.MyListsResponse], error)
}

// NewListServiceClient constructs a client for the superlists.v1.ListService service.
// The URL supplied should be the base URL of the server (e.g., http://api.acme.com).
func NewListServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) ListServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(api.Codec{})}, opts...)
	return &listServiceClient{
		createList: connect.NewClient[api.CreateListRequest, api.CreateListResponse](httpClient, baseURL+ListServiceCreateListProcedure, opts...),
		getList:    connect.NewClient[api.GetListRequest, api.GetListResponse](httpClient, baseURL+ListServiceGetListProcedure, opts...),
		addItem:    connect.NewClient[api.AddItemRequest, api.AddItemResponse](httpClient, baseURL+ListServiceAddItemProcedure, opts...),
		shareList:  connect.NewClient[api.ShareListRequest, api.ShareListResponse](httpClient, baseURL+ListServiceShareListProcedure, opts...),
		myLists:    connect.NewClient[api.MyListsRequest, api.MyListsResponse](httpClient, baseURL+ListServiceMyListsProcedure, opts...),
	}
}

type listServiceClient struct {
	createList *connect.Client[api.CreateListRequest, api.CreateListResponse]
	getList    *connect.Client[api.GetListRequest, api.GetListResponse]
	addItem    *connect.Client[api.AddItemRequest, api.AddItemResponse]
	shareList  *connect.Client[api.ShareListRequest, api.ShareListResponse]
	myLists    *connect.Client[api.MyListsRequest, api.MyListsResponse]
}

func (c *listServiceClient) CreateList(ctx context.Context, req *connect.Request[api.CreateListRequest]) (*connect.Response[api.CreateListResponse], error) {
	return c.createList.CallUnary(ctx, req)
}

func (c *listServiceClient) GetList(ctx context.Context, req *connect.Request[api.GetListRequest]) (*connect.Response[api.GetListResponse], error) {
	return c.getList.CallUnary(ctx, req)
}

func (c *listServiceClient) AddItem(ctx context.Context, req *connect.Request[api.AddItemRequest]) (*connect.Response[api.AddItemResponse], error) {
	return c.addItem.CallUnary(ctx, req)
}

func (c *listServiceClient) ShareList(ctx context.Context, req *connect.Request[api.ShareListRequest]) (*connect.Response[api.ShareListResponse], error) {
	return c.shareList.CallUnary(ctx, req)
}

func (c *listServiceClient) MyLists(ctx context.Context, req *connect.Request[api.MyListsRequest]) (*connect.Response[api.MyListsResponse], error) {
	return c.myLists.CallUnary(ctx, req)
}

// ListServiceHandler is an implementation of the superlists.v1.ListService service.
type ListServiceHandler interface {
	CreateList(context.Context, *connect.Request[api.CreateListRequest]) (*connect.Response[api.CreateListResponse], error)
	GetList(context.Context, *connect.Request[api.GetListRequest]) (*connect.Response[api.GetListResponse], error)
	AddItem(context.Context, *connect.Request[api.AddItemRequest]) (*connect.Response[api.AddItemResponse], error)
	ShareList(context.Context, *connect.Request[api.ShareListRequest]) (*connect.Response[api.ShareListResponse], error)
	MyLists(context.Context, *connect.Request[api.MyListsRequest]) (*connect.Response[api.MyListsResponse], error)
}

// NewListServiceHandler builds an HTTP handler from the service implementation. It returns the
// path on which to mount the handler and the handler itself.
func NewListServiceHandler(svc ListServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(api.Codec{})}, opts...)
	createList := connect.NewUnaryHandler(ListServiceCreateListProcedure, svc.CreateList, opts...)
	getList := connect.NewUnaryHandler(ListServiceGetListProcedure, svc.GetList, opts...)
	addItem := connect.NewUnaryHandler(ListServiceAddItemProcedure, svc.AddItem, opts...)
	shareList := connect.NewUnaryHandler(ListServiceShareListProcedure, svc.ShareList, opts...)
	myLists := connect.NewUnaryHandler(ListServiceMyListsProcedure, svc.MyLists, opts...)
	return "/" + ListServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case ListServiceCreateListProcedure:
			createList.ServeHTTP(w, r)
		case ListServiceGetListProcedure:
			getList.ServeHTTP(w, r)
		case ListServiceAddItemProcedure:
			addItem.ServeHTTP(w, r)
		case ListServiceShareListProcedure:
			shareList.ServeHTTP(w, r)
		case ListServiceMyListsProcedure:
			myLists.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// UnimplementedListServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedListServiceHandler struct{}

func (UnimplementedListServiceHandler) CreateList(context.Context, *connect.Request[api.CreateListRequest]) (*connect.Response[api.CreateListResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("superlists.v1.ListService.CreateList is not implemented"))
}

func (UnimplementedListServiceHandler) GetList(context.Context, *connect.Request[api.GetListRequest]) (*connect.Response[api.GetListResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("superlists.v1.ListService.GetList is not implemented"))
}

func (UnimplementedListServiceHandler) AddItem(context.Context, *connect.Request[api.AddItemRequest]) (*connect.Response[api.AddItemResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("superlists.v1.ListService.AddItem is not implemented"))
}

func (UnimplementedListServiceHandler) ShareList(context.Context, *connect.Request[api.ShareListRequest]) (*connect.Response[api.ShareListResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("superlists.v1.ListService.ShareList is not implemented"))
}

func (UnimplementedListServiceHandler) MyLists(context.Context, *connect.Request[api.MyListsRequest]) (*connect.Response[api.MyListsResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("superlists.v1.ListService.MyLists is not implemented"))
}
