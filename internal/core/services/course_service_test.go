package services_test

import (
	"context"
	"testing"

	"github.com/edupulse/institute_portal_backend/internal/apperrors"
	"github.com/edupulse/institute_portal_backend/internal/core/domain"
	portsrepo "github.com/edupulse/institute_portal_backend/internal/core/ports/repositories"
	portssvc "github.com/edupulse/institute_portal_backend/internal/core/ports/services"
	"github.com/edupulse/institute_portal_backend/internal/core/services"
	"github.com/edupulse/institute_portal_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockCourseRepository is a mock type for the CourseRepositoryFacade interface
type MockCourseRepository struct {
	mock.Mock
}

func (m *MockCourseRepository) FindCourseByID(ctx context.Context, courseID string) (*domain.Course, error) {
	args := m.Called(ctx, courseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Course), args.Error(1)
}

func (m *MockCourseRepository) ListCourses(ctx context.Context, limit int, offset int) ([]domain.Course, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Course), args.Error(1)
}

func (m *MockCourseRepository) SaveCourse(ctx context.Context, course domain.Course) error {
	args := m.Called(ctx, course)
	return args.Error(0)
}

func (m *MockCourseRepository) UpdateCourse(ctx context.Context, course domain.Course) error {
	args := m.Called(ctx, course)
	return args.Error(0)
}

var _ portsrepo.CourseRepositoryFacade = (*MockCourseRepository)(nil)

// --- Test Suite Setup ---

type CourseServiceTestSuite struct {
	suite.Suite
	mockRepo *MockCourseRepository
	service  portssvc.CourseSvcFacade
}

func (suite *CourseServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockCourseRepository)
	suite.service = services.NewCourseService(suite.mockRepo)
}

// --- Test Cases ---

func (suite *CourseServiceTestSuite) TestCreateCourse_Success() {
	ctx := context.Background()
	creatorUserID := uuid.NewString()
	req := dto.CreateCourseRequest{
		Title:              "Data Structures",
		FeePerMonth:        decimal.NewFromInt(5000),
		DurationMonths:     6,
		DiscountPercentage: decimal.NewFromInt(10),
		Status:             domain.CourseLive,
	}

	suite.mockRepo.On("SaveCourse", ctx, mock.MatchedBy(func(c domain.Course) bool {
		return c.Title == req.Title &&
			c.FeePerMonth.Equal(req.FeePerMonth) &&
			c.DurationMonths == 6 &&
			c.Status == domain.CourseLive &&
			c.CreatedBy == creatorUserID
	})).Return(nil).Once()

	course, err := suite.service.CreateCourse(ctx, req, creatorUserID)

	suite.NoError(err)
	suite.NotEmpty(course.CourseID)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CourseServiceTestSuite) TestCreateCourse_DefaultsToUpcoming() {
	ctx := context.Background()
	req := dto.CreateCourseRequest{
		Title:          "Operating Systems",
		FeePerMonth:    decimal.NewFromInt(4000),
		DurationMonths: 4,
	}

	suite.mockRepo.On("SaveCourse", ctx, mock.MatchedBy(func(c domain.Course) bool {
		return c.Status == domain.CourseUpcoming
	})).Return(nil).Once()

	_, err := suite.service.CreateCourse(ctx, req, uuid.NewString())

	suite.NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CourseServiceTestSuite) TestCreateCourse_NegativeFee() {
	ctx := context.Background()
	req := dto.CreateCourseRequest{
		Title:          "Networks",
		FeePerMonth:    decimal.NewFromInt(-1),
		DurationMonths: 3,
	}

	_, err := suite.service.CreateCourse(ctx, req, uuid.NewString())

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveCourse")
}

func (suite *CourseServiceTestSuite) TestCreateCourse_DiscountAbove100() {
	ctx := context.Background()
	req := dto.CreateCourseRequest{
		Title:              "Databases",
		FeePerMonth:        decimal.NewFromInt(1000),
		DurationMonths:     3,
		DiscountPercentage: decimal.NewFromInt(101),
	}

	_, err := suite.service.CreateCourse(ctx, req, uuid.NewString())

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveCourse")
}

func (suite *CourseServiceTestSuite) TestUpdateCourse_PartialEdit() {
	ctx := context.Background()
	existing := &domain.Course{
		CourseID:           uuid.NewString(),
		Title:              "Old Title",
		FeePerMonth:        decimal.NewFromInt(5000),
		DurationMonths:     6,
		DiscountPercentage: decimal.NewFromInt(10),
		Status:             domain.CourseUpcoming,
	}
	newTitle := "New Title"
	req := dto.UpdateCourseRequest{Title: &newTitle}

	suite.mockRepo.On("FindCourseByID", ctx, existing.CourseID).Return(existing, nil).Once()
	suite.mockRepo.On("UpdateCourse", ctx, mock.MatchedBy(func(c domain.Course) bool {
		return c.Title == newTitle &&
			c.FeePerMonth.Equal(decimal.NewFromInt(5000)) &&
			c.DurationMonths == 6
	})).Return(nil).Once()

	updated, err := suite.service.UpdateCourse(ctx, existing.CourseID, req, uuid.NewString())

	suite.NoError(err)
	suite.Equal(newTitle, updated.Title)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CourseServiceTestSuite) TestUpdateCourse_NotFound() {
	ctx := context.Background()
	courseID := uuid.NewString()

	suite.mockRepo.On("FindCourseByID", ctx, courseID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.UpdateCourse(ctx, courseID, dto.UpdateCourseRequest{}, uuid.NewString())

	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateCourse")
}

func (suite *CourseServiceTestSuite) TestListCourses_DefaultsLimit() {
	ctx := context.Background()

	suite.mockRepo.On("ListCourses", ctx, 20, 0).Return([]domain.Course{}, nil).Once()

	_, err := suite.service.ListCourses(ctx, 0, -5)

	suite.NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

// --- Run Test Suite ---
func TestCourseService(t *testing.T) {
	suite.Run(t, new(CourseServiceTestSuite))
}
