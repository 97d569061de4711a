package http

import (
	"net/http"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/application/usecases/queries"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/user"

	"github.com/labstack/echo/v4"
)

// Register handles POST /api/v1/register - creates a customer account.
func (s *Server) Register(c echo.Context) error {
	var req registerRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	cmd, err := commands.NewRegisterUserCommand(kernel.NewUUID(), req.Email, req.Password, req.Name, req.Address, req.ContactNumber)
	if err != nil {
		return err
	}
	u, err := s.commands.RegisterUser.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, newUserResponse(u))
}

// RegisterAgent handles POST /api/v1/support/agents/register - creates an unapproved
// support agent account.
func (s *Server) RegisterAgent(c echo.Context) error {
	var req agentRegisterRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	cmd, err := commands.NewRegisterAgentCommand(kernel.NewUUID(), req.Email, req.Password, req.Name, req.ContactNumber)
	if err != nil {
		return err
	}
	u, err := s.commands.RegisterUser.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, newUserResponse(u))
}

// Login handles POST /api/v1/login.
func (s *Server) Login(c echo.Context) error {
	var req loginRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	cmd, err := commands.NewLoginCommand(req.Email, req.Password)
	if err != nil {
		return err
	}
	result, err := s.commands.Login.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, loginResponse{User: newUserResponse(result.User), TokenPair: result.Tokens})
}

// GetProfile handles GET /api/v1/profile.
func (s *Server) GetProfile(c echo.Context) error {
	viewer, err := viewerFrom(c)
	if err != nil {
		return err
	}
	query, err := queries.NewGetProfileQuery(viewer)
	if err != nil {
		return err
	}
	profile, err := s.queries.Users.HandleProfile(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

// UpdateProfile handles PUT /api/v1/profile.
func (s *Server) UpdateProfile(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	var req profileRequest
	if err = bind(c, &req); err != nil {
		return err
	}

	cmd, err := commands.NewUpdateProfileCommand(caller, req.Name, req.Address, req.ContactNumber)
	if err != nil {
		return err
	}
	u, err := s.commands.UpdateProfile.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newUserResponse(u))
}

// ListUsers handles GET /api/v1/admin/users?role=.
func (s *Server) ListUsers(c echo.Context) error {
	viewer, err := viewerFrom(c)
	if err != nil {
		return err
	}
	query, err := queries.NewListUsersQuery(viewer, c.QueryParam("role"))
	if err != nil {
		return err
	}
	users, err := s.queries.Users.HandleList(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// SetUserRole handles PUT /api/v1/admin/users/:id/role.
func (s *Server) SetUserRole(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	userID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req roleRequest
	if err = bind(c, &req); err != nil {
		return err
	}
	role, err := user.ParseRole(req.Role)
	if err != nil {
		return err
	}

	cmd, err := commands.NewSetUserRoleCommand(caller, userID, role)
	if err != nil {
		return err
	}
	u, err := s.commands.SetUserRole.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newUserResponse(u))
}

// ApproveAgent handles POST /api/v1/admin/support/agents/:id/approve.
func (s *Server) ApproveAgent(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	agentID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	cmd, err := commands.NewApproveAgentCommand(caller, agentID)
	if err != nil {
		return err
	}
	u, err := s.commands.ApproveAgent.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newUserResponse(u))
}
