package policy

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	"github.com/kwyt0087/AI-employee-takes-leave/internal"
)

func TestPolicy(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Policy Module Suite")
}

type mockAPI struct {
	policies     []Policy
	listErr      error
	listCalls    int
	detail       *Policy
	detailErr    error
	uploadResult *UploadResult
	uploadErr    error
	updateErr    error
	deleteErr    error
	lastUpload   UploadDTO
}

func (m *mockAPI) List(ctx context.Context) ([]Policy, error) {
	m.listCalls++
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.policies, nil
}

func (m *mockAPI) Get(ctx context.Context, policyID int64) (*Policy, error) {
	if m.detailErr != nil {
		return nil, m.detailErr
	}
	d := *m.detail
	return &d, nil
}

func (m *mockAPI) Upload(ctx context.Context, dto UploadDTO) (*UploadResult, error) {
	m.lastUpload = dto
	if m.uploadErr != nil {
		return nil, m.uploadErr
	}
	return m.uploadResult, nil
}

func (m *mockAPI) Update(ctx context.Context, policyID int64, dto UpdateDTO) (*Policy, error) {
	if m.updateErr != nil {
		return nil, m.updateErr
	}
	d := *m.detail
	d.Title = dto.Title
	return &d, nil
}

func (m *mockAPI) Delete(ctx context.Context, policyID int64) error {
	return m.deleteErr
}

var _ = ginkgo.Describe("PolicyService", func() {
	var (
		api     *mockAPI
		service *Service
	)

	ginkgo.BeforeEach(func() {
		api = &mockAPI{
			policies: []Policy{
				{ID: 1, Title: "Leave policy", Category: "leave"},
				{ID: 2, Title: "Remote work policy", Category: "general"},
			},
			detail:       &Policy{ID: 1, Title: "Leave policy", Category: "leave"},
			uploadResult: &UploadResult{Status: "success", Message: "uploaded"},
		}
		service = NewService(api, slog.New(slog.NewTextHandler(io.Discard, nil)))
	})

	ginkgo.Describe("FetchAll", func() {
		ginkgo.It("caches the list", func() {
			policies, err := service.FetchAll(context.Background())

			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(policies).To(gomega.HaveLen(2))
			gomega.Expect(service.Policies()).To(gomega.HaveLen(2))
		})

		ginkgo.It("keeps the stale list and stores the fallback on failure", func() {
			_, err := service.FetchAll(context.Background())
			gomega.Expect(err).NotTo(gomega.HaveOccurred())

			api.listErr = internal.NewServerError()
			_, err = service.FetchAll(context.Background())

			gomega.Expect(err).To(gomega.HaveOccurred())
			gomega.Expect(service.Err()).To(gomega.Equal("could not load policies"))
			gomega.Expect(service.Policies()).To(gomega.HaveLen(2))
			gomega.Expect(service.Loading()).To(gomega.BeFalse())
		})
	})

	ginkgo.Describe("FetchDetail", func() {
		ginkgo.It("stores the detail", func() {
			detail, err := service.FetchDetail(context.Background(), 1)

			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(detail.Title).To(gomega.Equal("Leave policy"))
			gomega.Expect(service.Current()).NotTo(gomega.BeNil())
		})

		ginkgo.It("surfaces the server detail on failure", func() {
			api.detailErr = internal.NewValidationError("policy id must be positive")

			_, err := service.FetchDetail(context.Background(), -1)

			gomega.Expect(err).To(gomega.HaveOccurred())
			gomega.Expect(service.Err()).To(gomega.Equal("policy id must be positive"))
		})
	})

	ginkgo.Describe("Upload", func() {
		ginkgo.It("sends the document and refreshes the list", func() {
			result, err := service.Upload(context.Background(), UploadDTO{
				Title:    "Travel policy",
				Category: "general",
				FileName: "travel.txt",
				Content:  strings.NewReader("book early"),
			})

			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(result.Status).To(gomega.Equal("success"))
			gomega.Expect(api.lastUpload.FileName).To(gomega.Equal("travel.txt"))
			gomega.Expect(api.listCalls).To(gomega.Equal(1))
		})

		ginkgo.It("does not refresh when the upload fails", func() {
			api.uploadErr = internal.NewForbiddenError()

			_, err := service.Upload(context.Background(), UploadDTO{Title: "Travel policy"})

			gomega.Expect(err).To(gomega.HaveOccurred())
			gomega.Expect(api.listCalls).To(gomega.Equal(0))
			gomega.Expect(service.Err()).To(gomega.Equal("could not upload policy"))
		})
	})

	ginkgo.Describe("Update", func() {
		ginkgo.It("stores the updated detail and refreshes the list", func() {
			updated, err := service.Update(context.Background(), 1, UpdateDTO{Title: "Leave policy v2"})

			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(updated.Title).To(gomega.Equal("Leave policy v2"))
			gomega.Expect(service.Current().Title).To(gomega.Equal("Leave policy v2"))
			gomega.Expect(api.listCalls).To(gomega.Equal(1))
		})
	})

	ginkgo.Describe("Delete", func() {
		ginkgo.It("refreshes the list after the removal", func() {
			gomega.Expect(service.Delete(context.Background(), 2)).To(gomega.Succeed())
			gomega.Expect(api.listCalls).To(gomega.Equal(1))
		})

		ginkgo.It("stores the fallback when the removal fails", func() {
			api.deleteErr = internal.NewNotFoundError()

			err := service.Delete(context.Background(), 99)

			gomega.Expect(err).To(gomega.HaveOccurred())
			gomega.Expect(api.listCalls).To(gomega.Equal(0))
			gomega.Expect(service.Err()).To(gomega.Equal("could not delete policy"))
		})
	})
})
