package connlog_test

import (
	"log/slog"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nbelhadj/maintenance-management/internal/connlog"
	"github.com/nbelhadj/maintenance-management/internal/core/types"
)

func TestConnlog(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Connlog Suite")
}

type mockConnlogRepository struct {
	logs   map[int64]*connlog.ConnectionLog
	nextID int64
}

func newMockConnlogRepository() *mockConnlogRepository {
	return &mockConnlogRepository{logs: make(map[int64]*connlog.ConnectionLog), nextID: 1}
}

func (m *mockConnlogRepository) Create(log *connlog.ConnectionLog) error {
	log.ID = m.nextID
	m.nextID++
	m.logs[log.ID] = log
	return nil
}

func (m *mockConnlogRepository) GetByID(id int64) (*connlog.ConnectionLog, error) {
	log, ok := m.logs[id]
	if !ok {
		return nil, connlog.ErrNotFound
	}
	return log, nil
}

func (m *mockConnlogRepository) List() ([]*connlog.Row, error) {
	out := make([]*connlog.Row, 0, len(m.logs))
	for _, log := range m.logs {
		out = append(out, &connlog.Row{ConnectionLog: *log})
	}
	return out, nil
}

func (m *mockConnlogRepository) Update(log *connlog.ConnectionLog) error {
	m.logs[log.ID] = log
	return nil
}

func (m *mockConnlogRepository) Delete(id int64) error {
	delete(m.logs, id)
	return nil
}

func (m *mockConnlogRepository) LatestOpenForUser(userID int64) (*connlog.ConnectionLog, error) {
	var latest *connlog.ConnectionLog
	for _, log := range m.logs {
		if log.UserID != userID || log.DisconnectedAt != nil {
			continue
		}
		if latest == nil || log.ConnectedAt.After(latest.ConnectedAt) {
			latest = log
		}
	}
	if latest == nil {
		return nil, connlog.ErrNotFound
	}
	return latest, nil
}

var _ = Describe("ConnectionLog", func() {
	Describe("Disconnect", func() {
		It("computes the duration from login to logout", func() {
			login := time.Date(2026, time.March, 12, 9, 0, 0, 0, time.UTC)
			log := &connlog.ConnectionLog{ConnectedAt: login, LoginTime: types.TimeOfDay{Hour: 9}}

			Expect(log.Disconnect(login.Add(90 * time.Minute))).To(BeTrue())
			Expect(*log.DurationSeconds).To(Equal(int64(5400)))
			Expect(log.LogoutTime.String()).To(Equal("10:30"))
		})

		It("is a no-op once closed", func() {
			login := time.Date(2026, time.March, 12, 9, 0, 0, 0, time.UTC)
			log := &connlog.ConnectionLog{ConnectedAt: login}

			Expect(log.Disconnect(login.Add(time.Hour))).To(BeTrue())
			stored := *log.DurationSeconds

			Expect(log.Disconnect(login.Add(5 * time.Hour))).To(BeFalse())
			Expect(*log.DurationSeconds).To(Equal(stored))
		})

		It("never stores a negative duration", func() {
			login := time.Date(2026, time.March, 12, 9, 0, 0, 0, time.UTC)
			log := &connlog.ConnectionLog{ConnectedAt: login}

			Expect(log.Disconnect(login.Add(-time.Hour))).To(BeTrue())
			Expect(*log.DurationSeconds).To(Equal(int64(0)))
		})
	})
})

var _ = Describe("ConnlogService", func() {
	var (
		svc  *connlog.Service
		repo *mockConnlogRepository
	)

	BeforeEach(func() {
		repo = newMockConnlogRepository()
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		svc = connlog.NewService(repo, logger)
	})

	It("records an open log on login", func() {
		Expect(svc.Record(42, "10.0.0.1", "test-agent")).To(Succeed())

		log, err := repo.LatestOpenForUser(42)
		Expect(err).NotTo(HaveOccurred())
		Expect(log.IPAddress).To(Equal("10.0.0.1"))
		Expect(log.UserAgent).To(Equal("test-agent"))
		Expect(log.DisconnectedAt).To(BeNil())
	})

	It("closes a log exactly once", func() {
		Expect(svc.Record(42, "10.0.0.1", "test-agent")).To(Succeed())
		log, _ := repo.LatestOpenForUser(42)

		first, err := svc.Disconnect(log.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(first.Duration).NotTo(BeNil())

		second, err := svc.Disconnect(log.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(*second.Duration).To(Equal(*first.Duration))
		Expect(*second.LogoutTime).To(Equal(*first.LogoutTime))
	})

	It("logs out quietly when no session is open", func() {
		Expect(svc.DisconnectLatest(42)).To(Succeed())
	})

	It("closes only the latest open session on logout", func() {
		Expect(svc.Record(42, "10.0.0.1", "agent")).To(Succeed())
		Expect(svc.Record(42, "10.0.0.2", "agent")).To(Succeed())

		Expect(svc.DisconnectLatest(42)).To(Succeed())

		open, err := repo.LatestOpenForUser(42)
		Expect(err).NotTo(HaveOccurred())
		Expect(open.IPAddress).To(Equal("10.0.0.1"))
	})

	It("formats the duration as H:MM:SS", func() {
		login := time.Date(2026, time.March, 12, 9, 0, 0, 0, time.UTC)
		log := &connlog.ConnectionLog{UserID: 42, ConnectedAt: login}
		log.Disconnect(login.Add(2*time.Hour + 5*time.Minute + 3*time.Second))
		Expect(repo.Create(log)).To(Succeed())

		resp, err := svc.GetByID(log.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(*resp.Duration).To(Equal("2:05:03"))
	})
})
