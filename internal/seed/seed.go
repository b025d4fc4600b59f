// Package seed provides helpers to create development and test data.
package seed

import (
	"fmt"
	"math/rand"

	"inkwell/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options controls how much data Run generates.
type Options struct {
	Users             int
	PostsPerUser      int
	CommentsPerPost   int
	CategoriesPerPost int
	Password          string
}

// DefaultOptions returns a small data set suitable for local development.
func DefaultOptions() Options {
	return Options{
		Users:             5,
		PostsPerUser:      3,
		CommentsPerPost:   2,
		CategoriesPerPost: 1,
		Password:          "password1",
	}
}

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db *gorm.DB
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, seedValue int64) *Factory {
	gofakeit.Seed(seedValue)
	return &Factory{db: db}
}

// CreateUser persists a user with a bcrypt-hashed password.
func (f *Factory) CreateUser(password string) (*models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:     gofakeit.Name(),
		Email:    gofakeit.Email(),
		Password: string(hashed),
	}
	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreatePost persists a post owned by the given user.
func (f *Factory) CreatePost(user *models.User) (*models.Post, error) {
	post := &models.Post{
		Title:   gofakeit.Sentence(5),
		Content: gofakeit.Paragraph(1, 3, 5, "\n"),
		UserID:  user.ID,
	}
	if err := f.db.Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// CreateComment persists a comment on the given post by the given author.
func (f *Factory) CreateComment(post *models.Post, author *models.User) (*models.Comment, error) {
	comment := &models.Comment{
		Content: gofakeit.Sentence(10),
		PostID:  post.ID,
		UserID:  author.ID,
	}
	if err := f.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// AttachCategory creates a category and links it to the given post.
func (f *Factory) AttachCategory(post *models.Post) (*models.Category, error) {
	category := &models.Category{Name: gofakeit.BuzzWord()}
	if err := f.db.Create(category).Error; err != nil {
		return nil, err
	}
	if err := f.db.Model(post).Association("Categories").Append(category); err != nil {
		return nil, err
	}
	return category, nil
}

// Run populates the database with a connected mesh of users, posts,
// comments and categories.
func Run(db *gorm.DB, opts Options) error {
	f := NewFactory(db, rand.Int63())

	users := make([]*models.User, 0, opts.Users)
	for i := 0; i < opts.Users; i++ {
		user, err := f.CreateUser(opts.Password)
		if err != nil {
			return fmt.Errorf("seed user: %w", err)
		}
		users = append(users, user)
	}

	for _, user := range users {
		for i := 0; i < opts.PostsPerUser; i++ {
			post, err := f.CreatePost(user)
			if err != nil {
				return fmt.Errorf("seed post: %w", err)
			}

			for j := 0; j < opts.CategoriesPerPost; j++ {
				if _, err := f.AttachCategory(post); err != nil {
					return fmt.Errorf("seed category: %w", err)
				}
			}

			for j := 0; j < opts.CommentsPerPost; j++ {
				author := users[rand.Intn(len(users))]
				if _, err := f.CreateComment(post, author); err != nil {
					return fmt.Errorf("seed comment: %w", err)
				}
			}
		}
	}

	return nil
}
