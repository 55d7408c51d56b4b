package authhandlers

import (
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"net/netip"

	authservice "github.com/Black-And-White-Club/timetrial-standings/app/modules/auth/application"
	"github.com/Black-And-White-Club/timetrial-standings/pkg/apierror"
	"github.com/Black-And-White-Club/timetrial-standings/pkg/httputil"
	"github.com/Black-And-White-Club/timetrial-standings/pkg/observability/attr"
)

// maxLoginBody caps the login request body.
const maxLoginBody = 1 << 12

// LoginRequest is the POST /auth/login body.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthHandlers serves the /auth scope.
type AuthHandlers struct {
	service authservice.Service
	logger  *slog.Logger
}

// NewAuthHandlers creates a new AuthHandlers instance.
func NewAuthHandlers(service authservice.Service, logger *slog.Logger) *AuthHandlers {
	return &AuthHandlers{service: service, logger: logger}
}

func (h *AuthHandlers) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	ip, ok := clientAddr(r)
	if !ok {
		h.logger.WarnContext(ctx, "Login without a usable remote address", attr.String("remote_addr", r.RemoteAddr))
		apierror.WriteJSON(w, http.StatusBadRequest, apierror.Body{Message: "Unknown client address"})
		return
	}

	var req LoginRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxLoginBody)).Decode(&req); err != nil {
		apierror.WriteJSON(w, http.StatusBadRequest, apierror.Body{Message: "Invalid request body", Cause: err.Error()})
		return
	}
	if req.Username == "" || req.Password == "" {
		apierror.WriteJSON(w, http.StatusBadRequest, apierror.Body{Message: "username and password are required"})
		return
	}

	resp, err := h.service.Login(ctx, ip, req.Username, req.Password)
	if err != nil {
		apierror.Write(w, r, h.logger, err)
		return
	}
	httputil.WriteJSON(w, resp)
}

// clientIP returns the host part of RemoteAddr.
func clientIP(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

func clientAddr(r *http.Request) (netip.Addr, bool) {
	addr, err := netip.ParseAddr(clientIP(r))
	if err != nil {
		return netip.Addr{}, false
	}
	return addr.Unmap(), true
}
