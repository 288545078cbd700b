package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/aegis-auth/aegis-server/internal/logger"
	"github.com/aegis-auth/aegis-server/internal/model"
)

// RegisterParams carries profile fields and the plaintext password for
// registration. Shape validation happens in the API layer before the
// service sees the request.
type RegisterParams struct {
	FirstName    string
	LastName     string
	Email        string
	Country      string
	AgreeToTerms bool
	Password     string
}

// RegisterFaceParams extends RegisterParams with the enrollment image.
type RegisterFaceParams struct {
	RegisterParams
	Image []byte
}

// Auth orchestrates registration and login across the credential store,
// password hasher, face matcher and token issuer.
type Auth struct {
	userStore    model.UserStore
	hasher       model.PasswordHasher
	extractor    model.FaceExtractor
	matcher      model.FaceMatcher
	tokenManager model.TokenManager
	photoStore   model.Storage
	logger       *logger.Logger
}

// NewAuth creates a new Auth service.
func NewAuth(
	userStore model.UserStore,
	hasher model.PasswordHasher,
	extractor model.FaceExtractor,
	matcher model.FaceMatcher,
	tokenManager model.TokenManager,
	photoStore model.Storage,
	logger *logger.Logger,
) *Auth {
	return &Auth{
		userStore:    userStore,
		hasher:       hasher,
		extractor:    extractor,
		matcher:      matcher,
		tokenManager: tokenManager,
		photoStore:   photoStore,
		logger:       logger,
	}
}

// Register creates a password-only account. Registration does not log the
// user in; clients follow up with Login.
func (a *Auth) Register(ctx context.Context, params RegisterParams) (model.User, error) {
	a.logger.Debug("Auth service: starting user registration",
		"email", params.Email)

	if err := a.checkEmailFree(ctx, params.Email); err != nil {
		return model.User{}, err
	}

	if params.Password == "" {
		return model.User{}, model.ErrNoCredentials
	}

	hash, err := a.hasher.Hash(params.Password)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := a.createUser(ctx, params, hash, nil)
	if err != nil {
		return model.User{}, err
	}

	a.logger.Info("Auth service: user registered",
		"user_id", user.ID)

	return user, nil
}

// RegisterWithFace creates an account with a face encoding extracted from
// the enrollment image. A password remains optional here because the face
// is a usable credential on its own. The original image is archived in
// object storage under the new user's ID.
func (a *Auth) RegisterWithFace(ctx context.Context, params RegisterFaceParams) (model.User, error) {
	a.logger.Debug("Auth service: starting face registration",
		"email", params.Email)

	if err := a.checkEmailFree(ctx, params.Email); err != nil {
		return model.User{}, err
	}

	encoding, err := a.extractor.Extract(ctx, params.Image)
	if err != nil {
		if errors.Is(err, model.ErrNoFaceDetected) {
			a.logger.Info("Auth service: no face detected in enrollment image",
				"email", params.Email)
			return model.User{}, model.ErrNoFaceDetected
		}
		return model.User{}, fmt.Errorf("failed to extract face encoding: %w", err)
	}

	var hash []byte
	if params.Password != "" {
		hash, err = a.hasher.Hash(params.Password)
		if err != nil {
			return model.User{}, fmt.Errorf("failed to hash password: %w", err)
		}
	}

	user, err := a.createUser(ctx, params.RegisterParams, hash, encoding)
	if err != nil {
		return model.User{}, err
	}

	if err := a.photoStore.Upload(ctx, enrollmentPhotoKey(user.ID), bytes.NewReader(params.Image)); err != nil {
		// The account is already usable; losing the archived photo is
		// not worth failing the registration over.
		a.logger.Error("Auth service: failed to archive enrollment photo",
			"user_id", user.ID,
			"error", err.Error())
	}

	a.logger.Info("Auth service: user registered with face",
		"user_id", user.ID)

	return user, nil
}

// Login verifies the email/password pair and issues an access token.
// Unknown email, a face-only account and a wrong password all fail with the
// same ErrInvalidCredentials so callers cannot enumerate users.
func (a *Auth) Login(ctx context.Context, email, password string) (string, error) {
	user, err := a.userStore.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return "", model.ErrInvalidCredentials
		}
		return "", fmt.Errorf("failed to get user by email: %w", err)
	}

	if len(user.PasswordHash) == 0 || !a.hasher.Verify(password, user.PasswordHash) {
		a.logger.Info("Auth service: login rejected",
			"email", email)
		return "", model.ErrInvalidCredentials
	}

	token, err := a.tokenManager.GenerateAccessToken(user.ID)
	if err != nil {
		return "", fmt.Errorf("failed to issue token: %w", err)
	}

	a.logger.Info("Auth service: login succeeded",
		"user_id", user.ID)

	return token, nil
}

// LoginWithFace extracts an encoding from the image and scans stored
// encodings for the first one within threshold. The scan is linear and
// first-match-wins, which is fine at the expected account counts; ranking
// candidates by distance would be a product decision, not a fix.
func (a *Auth) LoginWithFace(ctx context.Context, image []byte) (string, error) {
	encoding, err := a.extractor.Extract(ctx, image)
	if err != nil {
		if errors.Is(err, model.ErrNoFaceDetected) {
			return "", model.ErrNoFaceDetected
		}
		return "", fmt.Errorf("failed to extract face encoding: %w", err)
	}

	users, err := a.userStore.ListWithFaceEncoding(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to list enrolled users: %w", err)
	}

	for _, user := range users {
		if !a.matcher.Matches(user.FaceEncoding, encoding) {
			continue
		}

		token, err := a.tokenManager.GenerateAccessToken(user.ID)
		if err != nil {
			return "", fmt.Errorf("failed to issue token: %w", err)
		}

		a.logger.Info("Auth service: face login succeeded",
			"user_id", user.ID)

		return token, nil
	}

	a.logger.Info("Auth service: face login rejected, no match")

	return "", model.ErrNoFaceMatch
}

// GetUser returns the profile for an authenticated user ID.
func (a *Auth) GetUser(ctx context.Context, id uuid.UUID) (model.User, error) {
	user, err := a.userStore.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}
	return user, nil
}

// EnrollmentPhoto streams the archived enrollment photo for a user. Users
// without a face enrollment, and enrollments whose photo upload was lost,
// both report ErrNotFound.
func (a *Auth) EnrollmentPhoto(ctx context.Context, id uuid.UUID) (io.ReadCloser, error) {
	user, err := a.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if len(user.FaceEncoding) == 0 {
		return nil, model.ErrNotFound
	}

	key := enrollmentPhotoKey(user.ID)
	exists, err := a.photoStore.Exists(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to check enrollment photo: %w", err)
	}
	if !exists {
		return nil, model.ErrNotFound
	}

	photo, err := a.photoStore.Download(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to download enrollment photo: %w", err)
	}

	return photo, nil
}

// checkEmailFree is a fast-path rejection; the unique constraint on email
// remains the authority when two registrations race.
func (a *Auth) checkEmailFree(ctx context.Context, email string) error {
	_, err := a.userStore.GetByEmail(ctx, email)
	if err == nil {
		a.logger.Info("Auth service: email already registered",
			"email", email)
		return model.ErrDuplicateEmail
	}
	if !errors.Is(err, model.ErrNotFound) {
		return fmt.Errorf("failed to get user by email: %w", err)
	}
	return nil
}

func (a *Auth) createUser(ctx context.Context, params RegisterParams, hash []byte, encoding []float64) (model.User, error) {
	now := time.Now()
	user := model.User{
		ID:           uuid.New(),
		FirstName:    params.FirstName,
		LastName:     params.LastName,
		Email:        params.Email,
		Country:      params.Country,
		AgreeToTerms: params.AgreeToTerms,
		PasswordHash: hash,
		FaceEncoding: encoding,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	saved, err := a.userStore.Create(ctx, user)
	if err != nil {
		if errors.Is(err, model.ErrDuplicateEmail) {
			return model.User{}, model.ErrDuplicateEmail
		}
		a.logger.Error("Auth service: failed to create user",
			"email", params.Email,
			"error", err.Error())
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	return saved, nil
}

func enrollmentPhotoKey(userID uuid.UUID) string {
	return fmt.Sprintf("enrollments/%s.jpg", userID)
}
