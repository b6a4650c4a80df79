package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/sayuryunur/storefront/internal/api/middleware"
	"github.com/sayuryunur/storefront/internal/errors"
	"github.com/sayuryunur/storefront/internal/utils/response"
)

// shopperFrom returns the shopper id set by middleware.Shopper and a logger
// scoped to it. It writes a 400 and returns false when the id is missing.
func shopperFrom(w http.ResponseWriter, r *http.Request) (string, *slog.Logger, bool) {

	logger := middleware.LoggerFromContext(r.Context())

	shopperID := middleware.ShopperIDFromContext(r.Context())
	if shopperID == "" {
		logger.Warn("Request without a shopper id")
		response.Error(w, errors.BadRequestError("Shopper id is required"))
		return "", logger, false
	}

	return shopperID, logger, true
}

// pathID reads a non-empty path parameter.
func pathID(r *http.Request, name string) (string, error) {

	id := strings.TrimSpace(r.PathValue(name))
	if id == "" {
		return "", errors.BadRequestError("Missing " + name)
	}

	return id, nil
}

// orderID parses the numeric order id from the path.
func orderID(r *http.Request) (int64, error) {

	raw, err := pathID(r, "id")
	if err != nil {
		return 0, err
	}

	id, parseErr := strconv.ParseInt(raw, 10, 64)
	if parseErr != nil || id <= 0 {
		return 0, errors.BadRequestError("Invalid order id").WithError(parseErr)
	}

	return id, nil
}
