package controllers

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"meetocure-service/internal/app/config"
	"meetocure-service/internal/app/models"
	"meetocure-service/internal/app/services/shared/realtime"
	"meetocure-service/internal/pkg/constvars"
	"meetocure-service/internal/pkg/dto/requests"
	"meetocure-service/internal/pkg/dto/responses"
	"meetocure-service/internal/pkg/exceptions"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockAppointmentUsecase struct {
	mock.Mock
}

func (m *MockAppointmentUsecase) appointment(args mock.Arguments) (*models.Appointment, error) {
	appointment, _ := args.Get(0).(*models.Appointment)
	return appointment, args.Error(1)
}

func (m *MockAppointmentUsecase) Book(ctx context.Context, session *models.Session, request *requests.BookAppointment) (*models.Appointment, error) {
	return m.appointment(m.Called(ctx, session, request))
}

func (m *MockAppointmentUsecase) Accept(ctx context.Context, session *models.Session, appointmentID string) (*models.Appointment, error) {
	return m.appointment(m.Called(ctx, session, appointmentID))
}

func (m *MockAppointmentUsecase) Complete(ctx context.Context, session *models.Session, appointmentID string) (*models.Appointment, error) {
	return m.appointment(m.Called(ctx, session, appointmentID))
}

func (m *MockAppointmentUsecase) Cancel(ctx context.Context, session *models.Session, appointmentID string) (*models.Appointment, error) {
	return m.appointment(m.Called(ctx, session, appointmentID))
}

func (m *MockAppointmentUsecase) FindByID(ctx context.Context, session *models.Session, appointmentID string) (*models.Appointment, error) {
	return m.appointment(m.Called(ctx, session, appointmentID))
}

func (m *MockAppointmentUsecase) ListForPatient(ctx context.Context, session *models.Session) ([]models.Appointment, error) {
	args := m.Called(ctx, session)
	appointments, _ := args.Get(0).([]models.Appointment)
	return appointments, args.Error(1)
}

func (m *MockAppointmentUsecase) ListForDoctor(ctx context.Context, session *models.Session, request *requests.DoctorAppointmentsQuery) ([]models.Appointment, error) {
	args := m.Called(ctx, session, request)
	appointments, _ := args.Get(0).([]models.Appointment)
	return appointments, args.Error(1)
}

type MockNotificationUsecase struct {
	mock.Mock
}

func (m *MockNotificationUsecase) ListMine(ctx context.Context, session *models.Session) ([]models.Notification, error) {
	args := m.Called(ctx, session)
	notifications, _ := args.Get(0).([]models.Notification)
	return notifications, args.Error(1)
}

func (m *MockNotificationUsecase) MarkRead(ctx context.Context, session *models.Session, notificationID string) error {
	return m.Called(ctx, session, notificationID).Error(0)
}

func (m *MockNotificationUsecase) MarkAllRead(ctx context.Context, session *models.Session) (int64, error) {
	args := m.Called(ctx, session)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationUsecase) DeleteRead(ctx context.Context, session *models.Session) (int64, error) {
	args := m.Called(ctx, session)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationUsecase) ReadAndDiscard(ctx context.Context, session *models.Session, notificationID string) error {
	return m.Called(ctx, session, notificationID).Error(0)
}

func (m *MockNotificationUsecase) SweepStaleUnread(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockOnboardingUsecase struct {
	mock.Mock
}

func (m *MockOnboardingUsecase) Submit(ctx context.Context, session *models.Session, doctorID string, request *requests.SubmitVerification) (*models.DoctorVerification, error) {
	args := m.Called(ctx, session, doctorID, request)
	record, _ := args.Get(0).(*models.DoctorVerification)
	return record, args.Error(1)
}

func (m *MockOnboardingUsecase) Approve(ctx context.Context, session *models.Session, doctorID string) (*responses.VerificationStatus, error) {
	args := m.Called(ctx, session, doctorID)
	status, _ := args.Get(0).(*responses.VerificationStatus)
	return status, args.Error(1)
}

func (m *MockOnboardingUsecase) Reject(ctx context.Context, session *models.Session, doctorID string, request *requests.RejectVerification) (*responses.VerificationStatus, error) {
	args := m.Called(ctx, session, doctorID, request)
	status, _ := args.Get(0).(*responses.VerificationStatus)
	return status, args.Error(1)
}

func (m *MockOnboardingUsecase) GetStatus(ctx context.Context, doctorID string) (*responses.VerificationStatus, error) {
	args := m.Called(ctx, doctorID)
	status, _ := args.Get(0).(*responses.VerificationStatus)
	return status, args.Error(1)
}

var (
	patientSession = &models.Session{SessionID: "S1", UserID: "P1", Role: constvars.RolePatient}
	doctorSession  = &models.Session{SessionID: "S2", UserID: "D1", Role: constvars.RoleDoctor}
	testConfig     = &config.InternalConfig{
		App: config.App{RequestTimeoutInSeconds: 5},
		Realtime: config.AppRealtime{
			WriteWait:           time.Second,
			PongWait:            time.Minute,
			MaxMessageSizeBytes: 4096,
			SendQueueSize:       8,
			AllowedOrigins:      []string{"*"},
		},
	}
)

// withSession stands in for the request id and authentication middlewares.
func withSession(session *models.Session) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), constvars.CONTEXT_REQUEST_ID_KEY, "req-test")
			if session != nil {
				ctx = context.WithValue(ctx, constvars.CONTEXT_SESSION_DATA_KEY, session)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func serve(t *testing.T, router http.Handler, method, target string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set(constvars.HeaderContentType, contentType)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeSuccess(t *testing.T, rec *httptest.ResponseRecorder, data interface{}) {
	t.Helper()
	var body struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.True(t, body.Success)
	if data != nil {
		require.NoError(t, json.Unmarshal(body.Data, data))
	}
}

func decodeFailure(t *testing.T, rec *httptest.ResponseRecorder) exceptions.CustomError {
	t.Helper()
	var body exceptions.CustomError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.False(t, body.Success)
	return body
}

func appointmentRouter(usecase *MockAppointmentUsecase, session *models.Session) http.Handler {
	ctrl := NewAppointmentController(zap.NewNop(), usecase, testConfig)
	router := chi.NewRouter()
	router.Use(withSession(session))
	router.Post("/appointments", ctrl.Book)
	router.Get("/appointments/my", ctrl.ListMine)
	router.Get("/appointments/doctor", ctrl.ListForDoctor)
	router.Get("/appointments/{appointmentId}", ctrl.FindByID)
	router.Put("/appointments/{appointmentId}/accept", ctrl.Accept)
	router.Put("/appointments/{appointmentId}/complete", ctrl.Complete)
	router.Put("/appointments/{appointmentId}/cancel", ctrl.Cancel)
	return router
}

func TestAppointmentController(t *testing.T) {
	t.Run("book returns the id and pending status", func(t *testing.T) {
		usecase := new(MockAppointmentUsecase)
		usecase.On("Book", mock.Anything, patientSession, mock.MatchedBy(func(request *requests.BookAppointment) bool {
			return request.DoctorID == "D1" && request.Time == "9:00 AM" && request.PatientInfo.Age == 30
		})).Return(&models.Appointment{ID: "A1", Status: models.AppointmentStatusPending}, nil)

		body := `{"doctorId":"D1","patientId":"P1","date":"2025-03-10","time":"9:00 AM","patientInfo":{"name":"Asha","phone":"9876543210","age":30,"gender":"female"}}`
		rec := serve(t, appointmentRouter(usecase, patientSession), http.MethodPost, "/appointments", strings.NewReader(body), constvars.MIMEApplicationJSON)

		require.Equal(t, http.StatusCreated, rec.Code)
		var data responses.BookAppointment
		decodeSuccess(t, rec, &data)
		assert.Equal(t, "A1", data.AppointmentID)
		assert.Equal(t, "pending", data.Status)
		usecase.AssertExpectations(t)
	})

	t.Run("malformed body never reaches the usecase", func(t *testing.T) {
		usecase := new(MockAppointmentUsecase)
		rec := serve(t, appointmentRouter(usecase, patientSession), http.MethodPost, "/appointments", strings.NewReader("{"), constvars.MIMEApplicationJSON)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		usecase.AssertNotCalled(t, "Book", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("slot conflict keeps its kind on the wire", func(t *testing.T) {
		usecase := new(MockAppointmentUsecase)
		usecase.On("Book", mock.Anything, patientSession, mock.Anything).
			Return(nil, exceptions.ErrSlotConflict(nil, "D1", "2025-03-10", "9:00 AM"))

		rec := serve(t, appointmentRouter(usecase, patientSession), http.MethodPost, "/appointments", strings.NewReader(`{}`), constvars.MIMEApplicationJSON)

		assert.Equal(t, http.StatusConflict, rec.Code)
		failure := decodeFailure(t, rec)
		assert.Equal(t, exceptions.KindSlotConflict, failure.Kind)
		assert.Equal(t, constvars.ErrClientSlotConflict, failure.ClientMessage)
	})

	t.Run("deadline maps to gateway timeout", func(t *testing.T) {
		usecase := new(MockAppointmentUsecase)
		usecase.On("ListForPatient", mock.Anything, patientSession).Return(nil, context.DeadlineExceeded)

		rec := serve(t, appointmentRouter(usecase, patientSession), http.MethodGet, "/appointments/my", nil, "")

		assert.Equal(t, http.StatusGatewayTimeout, rec.Code)
	})

	t.Run("doctor list forwards the date filter", func(t *testing.T) {
		usecase := new(MockAppointmentUsecase)
		usecase.On("ListForDoctor", mock.Anything, doctorSession, &requests.DoctorAppointmentsQuery{Date: "2025-03-10"}).
			Return([]models.Appointment{{ID: "A1"}, {ID: "A2"}}, nil)

		rec := serve(t, appointmentRouter(usecase, doctorSession), http.MethodGet, "/appointments/doctor?date=2025-03-10", nil, "")

		require.Equal(t, http.StatusOK, rec.Code)
		var data []models.Appointment
		decodeSuccess(t, rec, &data)
		assert.Len(t, data, 2)
	})

	t.Run("transitions answer with the new status", func(t *testing.T) {
		tests := []struct {
			name   string
			method string
			status models.AppointmentStatus
		}{
			{"accept", "Accept", models.AppointmentStatusAccepted},
			{"complete", "Complete", models.AppointmentStatusCompleted},
			{"cancel", "Cancel", models.AppointmentStatusCancelled},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				usecase := new(MockAppointmentUsecase)
				usecase.On(tt.method, mock.Anything, doctorSession, "A1").
					Return(&models.Appointment{ID: "A1", Status: tt.status}, nil)

				rec := serve(t, appointmentRouter(usecase, doctorSession), http.MethodPut, "/appointments/A1/"+tt.name, nil, "")

				require.Equal(t, http.StatusOK, rec.Code)
				var data responses.AppointmentTransition
				decodeSuccess(t, rec, &data)
				assert.Equal(t, string(tt.status), data.Status)
			})
		}
	})

	t.Run("illegal transition is a conflict", func(t *testing.T) {
		usecase := new(MockAppointmentUsecase)
		usecase.On("Accept", mock.Anything, doctorSession, "A1").
			Return(nil, exceptions.ErrIllegalTransition(nil, constvars.ErrClientAppointmentNotPending, "accepted", "accepted"))

		rec := serve(t, appointmentRouter(usecase, doctorSession), http.MethodPut, "/appointments/A1/accept", nil, "")

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, constvars.ErrClientAppointmentNotPending, decodeFailure(t, rec).ClientMessage)
	})

	t.Run("missing session is unauthorized", func(t *testing.T) {
		usecase := new(MockAppointmentUsecase)
		rec := serve(t, appointmentRouter(usecase, nil), http.MethodGet, "/appointments/A1", nil, "")

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		usecase.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestNotificationController(t *testing.T) {
	build := func(usecase *MockNotificationUsecase) http.Handler {
		ctrl := NewNotificationController(zap.NewNop(), usecase, testConfig)
		router := chi.NewRouter()
		router.Use(withSession(patientSession))
		router.Get("/notifications/my", ctrl.ListMine)
		router.Put("/notifications/read-all", ctrl.MarkAllRead)
		router.Put("/notifications/{notificationId}/read", ctrl.MarkRead)
		router.Delete("/notifications/delete-read", ctrl.DeleteRead)
		return router
	}

	t.Run("list", func(t *testing.T) {
		usecase := new(MockNotificationUsecase)
		usecase.On("ListMine", mock.Anything, patientSession).Return([]models.Notification{{ID: "N1", Title: "Appointment Accepted"}}, nil)

		rec := serve(t, build(usecase), http.MethodGet, "/notifications/my", nil, "")

		require.Equal(t, http.StatusOK, rec.Code)
		var data []models.Notification
		decodeSuccess(t, rec, &data)
		require.Len(t, data, 1)
		assert.Equal(t, "N1", data[0].ID)
	})

	t.Run("mark read of a foreign notification is not found", func(t *testing.T) {
		usecase := new(MockNotificationUsecase)
		usecase.On("MarkRead", mock.Anything, patientSession, "N9").Return(exceptions.ErrNotificationNotFound(nil, "N9"))

		rec := serve(t, build(usecase), http.MethodPut, "/notifications/N9/read", nil, "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("read-all reports the deleted count", func(t *testing.T) {
		usecase := new(MockNotificationUsecase)
		usecase.On("MarkAllRead", mock.Anything, patientSession).Return(int64(3), nil)

		rec := serve(t, build(usecase), http.MethodPut, "/notifications/read-all", nil, "")

		require.Equal(t, http.StatusOK, rec.Code)
		var data responses.DeletedCount
		decodeSuccess(t, rec, &data)
		assert.Equal(t, int64(3), data.DeletedCount)
	})

	t.Run("delete read", func(t *testing.T) {
		usecase := new(MockNotificationUsecase)
		usecase.On("DeleteRead", mock.Anything, patientSession).Return(int64(0), nil)

		rec := serve(t, build(usecase), http.MethodDelete, "/notifications/delete-read", nil, "")

		assert.Equal(t, http.StatusOK, rec.Code)
		usecase.AssertExpectations(t)
	})
}

func TestOnboardingController(t *testing.T) {
	build := func(usecase *MockOnboardingUsecase) http.Handler {
		ctrl := NewOnboardingController(zap.NewNop(), usecase, testConfig)
		router := chi.NewRouter()
		router.Use(withSession(doctorSession))
		router.Post("/doctors/{doctorId}/verification", ctrl.Submit)
		router.Put("/doctors/{doctorId}/verification/reject", ctrl.Reject)
		router.Get("/doctor/verification-status/{doctorId}", ctrl.GetStatus)
		return router
	}

	t.Run("multipart submission is parsed into the request", func(t *testing.T) {
		var body bytes.Buffer
		writer := multipart.NewWriter(&body)
		require.NoError(t, writer.WriteField("fullName", "Dr Rao"))
		require.NoError(t, writer.WriteField("yearOfRegistration", "2012"))
		require.NoError(t, writer.WriteField("experienceYears", "11"))
		require.NoError(t, writer.WriteField("qualifications", `[{"degree":"MBBS","universityCollege":"AIIMS","year":2010}]`))
		require.NoError(t, writer.WriteField("clinicHospitalAffiliations", `[{"name":"City Clinic","city":"Pune"}]`))
		part, err := writer.CreateFormFile("identityDocument", "id.PDF")
		require.NoError(t, err)
		_, err = part.Write([]byte("%PDF-1.4"))
		require.NoError(t, err)
		require.NoError(t, writer.Close())

		usecase := new(MockOnboardingUsecase)
		var captured *requests.SubmitVerification
		var content []byte
		usecase.On("Submit", mock.Anything, doctorSession, "D1", mock.Anything).
			Run(func(args mock.Arguments) {
				captured = args.Get(3).(*requests.SubmitVerification)
				if len(captured.Documents) == 1 {
					content, _ = io.ReadAll(captured.Documents[0].Content)
				}
			}).
			Return(&models.DoctorVerification{DoctorID: "D1", RegistrationStatus: models.RegistrationStatusUnderReview}, nil)

		rec := serve(t, build(usecase), http.MethodPost, "/doctors/D1/verification", &body, writer.FormDataContentType())

		require.Equal(t, http.StatusCreated, rec.Code)
		require.NotNil(t, captured)
		assert.Equal(t, "Dr Rao", captured.FullName)
		assert.Equal(t, 2012, captured.YearOfRegistration)
		assert.Equal(t, 11, captured.ExperienceYears)
		require.Len(t, captured.Qualifications, 1)
		assert.Equal(t, "AIIMS", captured.Qualifications[0].UniversityCollege)
		require.Len(t, captured.Affiliations, 1)
		require.Len(t, captured.Documents, 1)
		assert.Equal(t, "identityDocument", captured.Documents[0].Field)
		assert.Equal(t, "id.PDF", captured.Documents[0].FileName)
		assert.Equal(t, int64(8), captured.Documents[0].Size)
		assert.Equal(t, "%PDF-1.4", string(content))
	})

	t.Run("non numeric year is rejected before the usecase", func(t *testing.T) {
		var body bytes.Buffer
		writer := multipart.NewWriter(&body)
		require.NoError(t, writer.WriteField("yearOfRegistration", "twenty"))
		require.NoError(t, writer.Close())
		usecase := new(MockOnboardingUsecase)

		rec := serve(t, build(usecase), http.MethodPost, "/doctors/D1/verification", &body, writer.FormDataContentType())

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		usecase.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("json body is not a multipart form", func(t *testing.T) {
		usecase := new(MockOnboardingUsecase)
		rec := serve(t, build(usecase), http.MethodPost, "/doctors/D1/verification", strings.NewReader(`{}`), constvars.MIMEApplicationJSON)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("reject forwards the message", func(t *testing.T) {
		usecase := new(MockOnboardingUsecase)
		usecase.On("Reject", mock.Anything, doctorSession, "D1", &requests.RejectVerification{Message: "blurry scan"}).
			Return(nil, exceptions.ErrRoleNotAllowed(nil, constvars.RoleDoctor))

		rec := serve(t, build(usecase), http.MethodPut, "/doctors/D1/verification/reject", strings.NewReader(`{"message":"blurry scan"}`), constvars.MIMEApplicationJSON)

		assert.Equal(t, http.StatusForbidden, rec.Code)
		usecase.AssertExpectations(t)
	})

	t.Run("status poll", func(t *testing.T) {
		usecase := new(MockOnboardingUsecase)
		usecase.On("GetStatus", mock.Anything, "D1").Return(&responses.VerificationStatus{
			DoctorID:           "D1",
			RegistrationStatus: string(models.RegistrationStatusRejected),
			Message:            "blurry scan",
		}, nil)

		rec := serve(t, build(usecase), http.MethodGet, "/doctor/verification-status/D1", nil, "")

		require.Equal(t, http.StatusOK, rec.Code)
		var data responses.VerificationStatus
		decodeSuccess(t, rec, &data)
		assert.Equal(t, "rejected", data.RegistrationStatus)
		assert.Equal(t, "blurry scan", data.Message)
	})
}

func TestRealtimeController(t *testing.T) {
	hub := realtime.NewHub(zap.NewNop())
	usecase := new(MockNotificationUsecase)
	ctrl := NewRealtimeController(zap.NewNop(), hub, usecase, testConfig)

	router := chi.NewRouter()
	router.Use(withSession(patientSession))
	router.Get("/ws", ctrl.Connect)
	server := httptest.NewServer(router)
	defer server.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(server.URL, "http")+"/ws", nil)
	require.NoError(t, err)
	defer conn.Close()

	readFrame := func() models.RealtimeMessage {
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
		var message models.RealtimeMessage
		require.NoError(t, conn.ReadJSON(&message))
		return message
	}

	t.Run("joining another user's room is refused", func(t *testing.T) {
		require.NoError(t, conn.WriteJSON(realtime.InboundMessage{Event: constvars.RealtimeEventJoin, UserID: "P2"}))
		assert.Equal(t, constvars.RealtimeEventError, readFrame().Event)
	})

	t.Run("patients cannot join the reviewer room", func(t *testing.T) {
		require.NoError(t, conn.WriteJSON(realtime.InboundMessage{Event: constvars.RealtimeEventJoin, UserID: constvars.ReviewerRoom}))
		assert.Equal(t, constvars.RealtimeEventError, readFrame().Event)
	})

	t.Run("joined connection receives published notifications", func(t *testing.T) {
		require.NoError(t, conn.WriteJSON(realtime.InboundMessage{Event: constvars.RealtimeEventJoin, UserID: "P1"}))
		assert.Equal(t, constvars.RealtimeEventJoined, readFrame().Event)

		require.NoError(t, hub.Publish(context.Background(), "P1", &models.RealtimeMessage{
			Event: constvars.RealtimeEventReceiveNotification,
			Data:  map[string]string{"id": "N1"},
		}))
		assert.Equal(t, constvars.RealtimeEventReceiveNotification, readFrame().Event)
	})

	t.Run("readNotification reaches the usecase as the connection user", func(t *testing.T) {
		done := make(chan struct{})
		usecase.On("ReadAndDiscard", mock.Anything, mock.MatchedBy(func(s *models.Session) bool {
			return s.UserID == "P1" && s.Role == constvars.RolePatient
		}), "N1").Return(nil).Run(func(mock.Arguments) { close(done) }).Once()

		require.NoError(t, conn.WriteJSON(realtime.InboundMessage{Event: constvars.RealtimeEventReadNotification, NotificationID: "N1"}))

		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("readNotification was not handled")
		}
		usecase.AssertExpectations(t)
	})
}

func TestWriteUsecaseError(t *testing.T) {
	t.Run("wrapped deadline maps to gateway timeout", func(t *testing.T) {
		rec := httptest.NewRecorder()
		writeUsecaseError(zap.NewNop(), rec, "req-1", "AppointmentController.FindByID", exceptions.ErrMongoDBFindDocument(context.DeadlineExceeded))

		assert.Equal(t, http.StatusGatewayTimeout, rec.Code)
		body := decodeFailure(t, rec)
		assert.Equal(t, constvars.ErrClientServerLongRespond, body.ClientMessage)
	})

	t.Run("domain errors keep their status", func(t *testing.T) {
		rec := httptest.NewRecorder()
		writeUsecaseError(zap.NewNop(), rec, "req-2", "AppointmentController.Book", exceptions.ErrSlotConflict(nil, "D1", "2025-03-10", "10:30 AM"))

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, exceptions.KindSlotConflict, decodeFailure(t, rec).Kind)
	})
}
