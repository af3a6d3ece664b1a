package httptransport

import (
	"sirpo/internal/admission"
	"sirpo/internal/notify"
	"sirpo/internal/routing"
	"sirpo/internal/session"
	"sirpo/pkg/domain"
)

type applicantLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Remember bool   `json:"remember"`
}

type adminLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type navigateRequest struct {
	Path string `json:"path"`
}

type registrationRequest struct {
	PositionID domain.PositionID `json:"position_id"`
}

type sessionResponse struct {
	Authenticated bool                   `json:"authenticated"`
	Kind          session.Kind           `json:"kind,omitempty"`
	Applicant     *session.Applicant     `json:"applicant,omitempty"`
	Administrator *session.Administrator `json:"administrator,omitempty"`
}

type loginResponse struct {
	sessionResponse
	Token      string         `json:"token,omitempty"`
	Navigation routing.Result `json:"navigation"`
}

type noticeResponse struct {
	Notice *notify.Notice `json:"notice,omitempty"`
}

type positionsResponse struct {
	Positions []*admission.Position `json:"positions"`
}

type registrationsResponse struct {
	Registrations []*admission.Registration `json:"registrations"`
}

func toSessionResponse(identity session.Identity) sessionResponse {
	resp := sessionResponse{
		Authenticated: identity.IsAuthenticated(),
		Kind:          identity.Kind,
	}
	switch identity.Kind {
	case session.KindApplicant:
		applicant := identity.Applicant
		resp.Applicant = &applicant
	case session.KindAdministrator:
		admin := identity.Administrator
		resp.Administrator = &admin
	}
	return resp
}
