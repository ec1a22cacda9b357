package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/elikia-api/internal/application/dto"
	"github.com/jhoicas/elikia-api/internal/application/session"
	"github.com/jhoicas/elikia-api/internal/domain/repository"
	"github.com/jhoicas/elikia-api/pkg/jwt"
)

// maxLoadWait tope de espera para ?wait=true.
const maxLoadWait = 15 * time.Second

// AuthConfig parámetros del token de sesión.
type AuthConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// SessionHandler login, logout y ciclo de vida de la sesión.
type SessionHandler struct {
	sessions *session.Manager
	cfg      AuthConfig
}

// NewSessionHandler construye el handler.
func NewSessionHandler(sessions *session.Manager, cfg AuthConfig) *SessionHandler {
	return &SessionHandler{sessions: sessions, cfg: cfg}
}

// Login godoc
// @Summary      Iniciar sesión
// @Description  Autentica contra el proveedor configurado, crea la sesión y dispara la carga de datos.
//               Con wait=true responde cuando la carga termina (ready o failed).
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body   dto.LoginRequest  true   "email + password, o idToken"
// @Param        wait  query  bool              false  "esperar la carga"
// @Success      200   {object}  dto.LoginResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *SessionHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.IDToken == "" && (in.Email == "" || in.Password == "") {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "email y password (o idToken) son requeridos"})
	}
	sess, err := h.sessions.Login(c.UserContext(), repository.Credentials{
		Email:    in.Email,
		Password: in.Password,
		IDToken:  in.IDToken,
	})
	if err != nil {
		return err
	}
	token, err := jwt.Generate(h.cfg.Secret, sess.User.ID, sess.ID, string(sess.User.Role), h.cfg.Issuer, h.cfg.ExpMinutes)
	if err != nil {
		return err
	}
	return c.JSON(dto.LoginResponse{
		Token:       token,
		SessionID:   sess.ID,
		User:        dto.NewUserResponse(sess.User),
		InitialView: sess.CurrentView(),
		State:       stateResponse(h.maybeWait(c, sess)),
	})
}

// Logout godoc
// @Summary      Cerrar sesión
// @Description  Cancela la carga en curso y descarta los datos de la sesión.
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.OKResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/auth/logout [post]
func (h *SessionHandler) Logout(c *fiber.Ctx) error {
	if err := h.sessions.Logout(GetSessionID(c)); err != nil {
		return err
	}
	return c.JSON(dto.OKResponse{OK: true})
}

// Current godoc
// @Summary      Sesión actual
// @Tags         session
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SessionResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/session [get]
func (h *SessionHandler) Current(c *fiber.Ctx) error {
	sess := GetSession(c)
	return c.JSON(sessionResponse(sess, sess.Store.State()))
}

// Reload godoc
// @Summary      Recargar datos
// @Description  Vuelve a leer las cuatro colecciones; una carga en curso queda reemplazada.
// @Tags         session
// @Security     Bearer
// @Produce      json
// @Param        wait  query  bool  false  "esperar la carga"
// @Success      200  {object}  dto.SessionResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/session/reload [post]
func (h *SessionHandler) Reload(c *fiber.Ctx) error {
	sess, err := h.sessions.Reload(GetSessionID(c))
	if err != nil {
		return err
	}
	return c.JSON(sessionResponse(sess, h.maybeWait(c, sess)))
}

// Navigate godoc
// @Summary      Cambiar de vista
// @Description  Una clave desconocida no cambia la vista (changed=false).
// @Tags         session
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.NavigateRequest  true  "clave de la vista"
// @Success      200   {object}  dto.NavigateResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/session/navigate [post]
func (h *SessionHandler) Navigate(c *fiber.Ctx) error {
	var in dto.NavigateRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	current, changed := GetSession(c).Navigate(in.View)
	return c.JSON(dto.NavigateResponse{CurrentView: current, Changed: changed})
}

// maybeWait con ?wait=true espera la carga (acotada); si el cliente se va devuelve el estado vigente.
func (h *SessionHandler) maybeWait(c *fiber.Ctx, sess *session.Session) session.State {
	if !c.QueryBool("wait") {
		return sess.Store.State()
	}
	ctx, cancel := context.WithTimeout(c.UserContext(), maxLoadWait)
	defer cancel()
	st, _ := sess.Wait(ctx)
	return st
}

func stateResponse(st session.State) dto.SessionStateResponse {
	return dto.SessionStateResponse{
		Phase:       string(st.Phase),
		FailureKind: string(st.Failure),
		Message:     st.Message,
	}
}

func sessionResponse(sess *session.Session, st session.State) dto.SessionResponse {
	return dto.SessionResponse{
		SessionID:   sess.ID,
		User:        dto.NewUserResponse(sess.User),
		CurrentView: sess.CurrentView(),
		State:       stateResponse(st),
	}
}
