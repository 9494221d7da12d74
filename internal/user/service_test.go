package user

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	"github.com/kwyt0087/AI-employee-takes-leave/internal"
)

func TestUser(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "User Module Suite")
}

type mockAPI struct {
	loginResult  *LoginResult
	loginErr     error
	loginCalls   int
	onLogin      func()
	user         *User
	getUserErr   error
	annualLeave  *AnnualLeaveInfo
	annualErr    error
	changePwdErr error
	stats        *LeaveStats
	statsErr     error
}

func (m *mockAPI) Login(ctx context.Context, dto LoginDTO) (*LoginResult, error) {
	m.loginCalls++
	if m.onLogin != nil {
		m.onLogin()
	}
	if m.loginErr != nil {
		return nil, m.loginErr
	}
	return m.loginResult, nil
}

func (m *mockAPI) GetUser(ctx context.Context, userID int64) (*User, error) {
	if m.getUserErr != nil {
		return nil, m.getUserErr
	}
	u := *m.user
	return &u, nil
}

func (m *mockAPI) UpdateUser(ctx context.Context, userID int64, dto UpdateProfileDTO) (*User, error) {
	u := *m.user
	return &u, nil
}

func (m *mockAPI) ChangePassword(ctx context.Context, userID int64, dto ChangePasswordDTO) error {
	return m.changePwdErr
}

func (m *mockAPI) GetLeaveStats(ctx context.Context, userID int64) (*LeaveStats, error) {
	if m.statsErr != nil {
		return nil, m.statsErr
	}
	return m.stats, nil
}

func (m *mockAPI) GetAnnualLeave(ctx context.Context, userID int64) (*AnnualLeaveInfo, error) {
	if m.annualErr != nil {
		return nil, m.annualErr
	}
	return m.annualLeave, nil
}

type mockSessionStore struct {
	token     string
	userID    int64
	payload   []byte
	destroyed int
}

func (m *mockSessionStore) SetToken(token string, userID int64) error {
	m.token = token
	m.userID = userID
	return nil
}

func (m *mockSessionStore) SaveUser(userID int64, payload []byte) error {
	m.payload = payload
	return nil
}

func (m *mockSessionStore) User() ([]byte, bool) {
	if m.payload == nil {
		return nil, false
	}
	return m.payload, true
}

func (m *mockSessionStore) UserID() int64 { return m.userID }

func (m *mockSessionStore) Destroy() error {
	m.destroyed++
	m.token = ""
	m.payload = nil
	return nil
}

var _ = ginkgo.Describe("UserService", func() {
	var (
		api      *mockAPI
		sessions *mockSessionStore
		service  *Service
	)

	ginkgo.BeforeEach(func() {
		api = &mockAPI{
			loginResult: &LoginResult{AccessToken: "token-abc", UserID: 7},
			user: &User{
				ID:       7,
				Username: "zhangwei",
				FullName: "Zhang Wei",
				IsAdmin:  false,
				IsActive: true,
			},
			annualLeave: &AnnualLeaveInfo{TotalDays: 10, UsedDays: 3, RemainingDays: 7},
			stats:       &LeaveStats{Total: 4, Approved: 2, Pending: 1, Rejected: 1},
		}
		sessions = &mockSessionStore{}
		service = NewService(api, sessions, slog.New(slog.NewTextHandler(io.Discard, nil)))
	})

	ginkgo.Describe("Login", func() {
		ginkgo.It("stores the token, then merges profile and annual leave into one snapshot", func() {
			result, err := service.Login(context.Background(), LoginDTO{Username: "zhangwei", Password: "pw"})

			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(result.AccessToken).To(gomega.Equal("token-abc"))
			gomega.Expect(sessions.token).To(gomega.Equal("token-abc"))
			gomega.Expect(sessions.userID).To(gomega.Equal(int64(7)))

			current := service.Current()
			gomega.Expect(current).NotTo(gomega.BeNil())
			gomega.Expect(current.Username).To(gomega.Equal("zhangwei"))
			gomega.Expect(current.AnnualLeave).NotTo(gomega.BeNil())
			gomega.Expect(current.AnnualLeave.RemainingDays).To(gomega.Equal(7.0))

			gomega.Expect(sessions.payload).To(gomega.ContainSubstring("annual_leave"))
			gomega.Expect(service.Loading()).To(gomega.BeFalse())
			gomega.Expect(service.Err()).To(gomega.BeEmpty())
		})

		ginkgo.It("is loading while the call is in flight", func() {
			var loadingDuringCall bool
			api.onLogin = func() { loadingDuringCall = service.Loading() }

			_, err := service.Login(context.Background(), LoginDTO{Username: "zhangwei", Password: "pw"})

			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(loadingDuringCall).To(gomega.BeTrue())
			gomega.Expect(service.Loading()).To(gomega.BeFalse())
		})

		ginkgo.It("surfaces the server detail and stores no token on failure", func() {
			api.loginErr = internal.NewValidationError("wrong username or password")

			_, err := service.Login(context.Background(), LoginDTO{Username: "zhangwei", Password: "bad"})

			gomega.Expect(err).To(gomega.HaveOccurred())
			gomega.Expect(service.Err()).To(gomega.Equal("wrong username or password"))
			gomega.Expect(sessions.token).To(gomega.BeEmpty())
			gomega.Expect(service.Loading()).To(gomega.BeFalse())
		})

		ginkgo.It("falls back to the fixed message when the failure has no detail", func() {
			api.loginErr = errors.New("boom")

			_, err := service.Login(context.Background(), LoginDTO{Username: "zhangwei", Password: "pw"})

			gomega.Expect(err).To(gomega.HaveOccurred())
			gomega.Expect(service.Err()).To(gomega.Equal("login failed"))
		})

		ginkgo.It("keeps the token when the profile fetch fails after it was stored", func() {
			api.getUserErr = internal.NewServerError()

			_, err := service.Login(context.Background(), LoginDTO{Username: "zhangwei", Password: "pw"})

			gomega.Expect(err).To(gomega.HaveOccurred())
			gomega.Expect(sessions.token).To(gomega.Equal("token-abc"))
			gomega.Expect(sessions.destroyed).To(gomega.Equal(0))
			gomega.Expect(service.Current()).To(gomega.BeNil())
		})
	})

	ginkgo.Describe("FetchUser", func() {
		ginkgo.It("fails without touching the snapshot when the annual-leave fetch fails", func() {
			api.annualErr = internal.NewServerError()

			_, err := service.FetchUser(context.Background(), 7)

			gomega.Expect(err).To(gomega.HaveOccurred())
			gomega.Expect(service.Current()).To(gomega.BeNil())
			gomega.Expect(service.Err()).To(gomega.Equal("could not load user profile"))
		})
	})

	ginkgo.Describe("Init", func() {
		ginkgo.It("restores the cached profile", func() {
			sessions.payload = []byte(`{"id":7,"username":"zhangwei","is_admin":true}`)

			service.Init()

			current := service.Current()
			gomega.Expect(current).NotTo(gomega.BeNil())
			gomega.Expect(current.IsAdmin).To(gomega.BeTrue())
		})

		ginkgo.It("destroys the session when the snapshot is unreadable", func() {
			sessions.payload = []byte(`{broken`)

			service.Init()

			gomega.Expect(service.Current()).To(gomega.BeNil())
			gomega.Expect(sessions.destroyed).To(gomega.Equal(1))
		})
	})

	ginkgo.Describe("Logout", func() {
		ginkgo.It("drops the profile and destroys the session", func() {
			_, err := service.Login(context.Background(), LoginDTO{Username: "zhangwei", Password: "pw"})
			gomega.Expect(err).NotTo(gomega.HaveOccurred())

			gomega.Expect(service.Logout()).To(gomega.Succeed())
			gomega.Expect(service.Current()).To(gomega.BeNil())
			gomega.Expect(sessions.destroyed).To(gomega.Equal(1))
		})
	})

	ginkgo.Describe("ChangePassword", func() {
		ginkgo.It("stores the per-action fallback on failure", func() {
			api.changePwdErr = errors.New("boom")

			err := service.ChangePassword(context.Background(), 7, ChangePasswordDTO{OldPassword: "a", NewPassword: "b"})

			gomega.Expect(err).To(gomega.HaveOccurred())
			gomega.Expect(service.Err()).To(gomega.Equal("could not change password"))
		})
	})
})
