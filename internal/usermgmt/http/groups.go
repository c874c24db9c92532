package http

import (
	"net/http"

	"github.com/aussiebroadwan/usermgmt/pkg/adminsdk"
	"github.com/aussiebroadwan/usermgmt/pkg/httpx"
	"github.com/aussiebroadwan/usermgmt/pkg/slogx"
)

type GroupsHandler struct {
	Groups GroupLister
}

// ServeHTTP handles the list groups endpoint
//
//	@Summary		List groups
//	@Description	Returns every group in the directory, in creation order.
//	@Tags			Groups
//	@Produce		json
//	@Success		200	{object}	adminsdk.GroupsResponse	"List of groups"
//	@Failure		500	{object}	adminsdk.ErrorResponse	"Internal server error"
//	@Router			/v1/groups [get].
func (h *GroupsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	groups, err := h.Groups.ListGroups(ctx)
	if err != nil {
		slogx.FromContext(ctx).Error("failed to list groups", "error", err)
		adminsdk.ErrServerError.WithMessage("Failed to retrieve groups").WriteError(w)
		return
	}

	response := adminsdk.GroupsResponse{Groups: make([]adminsdk.GroupResponse, len(groups))}
	for i, g := range groups {
		response.Groups[i] = adminsdk.GroupResponse{ID: g.ID, Name: g.Name}
	}

	httpx.WriteJSON(w, http.StatusOK, response)
}
