package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"
	"github.com/go-playground/validator/v10"

	"github.com/mmynk/superlists/internal/lists"
	"github.com/mmynk/superlists/internal/middleware"
	"github.com/mmynk/superlists/pkg/api"
	"github.com/mmynk/superlists/pkg/api/apiconnect"
)

// ListService implements the Connect ListService
type ListService struct {
	apiconnect.UnimplementedListServiceHandler
	lists    *lists.Service
	validate *validator.Validate
}

// NewListService creates a new ListService over the list operations.
func NewListService(lists *lists.Service) *ListService {
	return &ListService{lists: lists, validate: newValidator()}
}

// CreateList creates a list with its first item. Logged-in callers own
// the new list; anonymous callers create an unowned one.
func (s *ListService) CreateList(ctx context.Context, req *connect.Request[api.CreateListRequest]) (*connect.Response[api.CreateListResponse], error) {
	owner := middleware.GetEmail(ctx)
	slog.Info("CreateList request", "owner", owner)

	list, err := s.lists.CreateNew(ctx, req.Msg.Text, owner)
	if err != nil {
		return nil, toConnectError(err)
	}

	list, items, err := s.lists.Get(ctx, list.ID)
	if err != nil {
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.CreateListResponse{
		List:  listToAPI(list),
		Items: itemsToAPI(items),
	}), nil
}

// GetList returns a list with its items in the order they were added.
func (s *ListService) GetList(ctx context.Context, req *connect.Request[api.GetListRequest]) (*connect.Response[api.GetListResponse], error) {
	list, items, err := s.lists.Get(ctx, req.Msg.ListID)
	if err != nil {
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.GetListResponse{
		List:  listToAPI(list),
		Items: itemsToAPI(items),
	}), nil
}

// AddItem appends an item to a list.
func (s *ListService) AddItem(ctx context.Context, req *connect.Request[api.AddItemRequest]) (*connect.Response[api.AddItemResponse], error) {
	item, err := s.lists.AddItem(ctx, req.Msg.ListID, req.Msg.Text)
	if err != nil {
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.AddItemResponse{Item: itemToAPI(item)}), nil
}

// ShareList shares a list with an existing user.
func (s *ListService) ShareList(ctx context.Context, req *connect.Request[api.ShareListRequest]) (*connect.Response[api.ShareListResponse], error) {
	if err := validateRequest(s.validate, req.Msg); err != nil {
		return nil, toConnectError(err)
	}

	if err := s.lists.Share(ctx, req.Msg.ListID, req.Msg.Email); err != nil {
		return nil, toConnectError(err)
	}

	list, _, err := s.lists.Get(ctx, req.Msg.ListID)
	if err != nil {
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.ShareListResponse{List: listToAPI(list)}), nil
}

// MyLists returns the caller's owned and shared lists. Requires login.
func (s *ListService) MyLists(ctx context.Context, req *connect.Request[api.MyListsRequest]) (*connect.Response[api.MyListsResponse], error) {
	email := middleware.GetEmail(ctx)
	if email == "" {
		return nil, connect.NewError(connect.CodeUnauthenticated, errLoginRequired)
	}

	visible, err := s.lists.VisibleListsFor(ctx, email)
	if err != nil {
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.MyListsResponse{
		Owned:  listsToAPI(visible.Owned),
		Shared: listsToAPI(visible.Shared),
	}), nil
}
