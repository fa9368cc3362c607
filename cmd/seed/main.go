package main

import (
	"fmt"

	"inkwell/internal/model"
	"inkwell/pkg/config"
	"inkwell/pkg/database"
	"inkwell/pkg/logger"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log := logger.New()
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}

	if err := seedDatabase(db, log); err != nil {
		log.Error("Failed to seed database: %v", err)
		panic(err)
	}

	log.Info("Database seeded successfully!")
}

func seedDatabase(db *gorm.DB, log *logger.Logger) error {
	testUsers := []struct {
		username  string
		firstName string
		lastName  string
		password  string
	}{
		{"alice_writes", "Alice", "Carson", "password123"},
		{"bob_reviews", "Bob", "Delgado", "password123"},
		{"charlie_dev", "Charlie", "Nguyen", "password123"},
		{"diana_notes", "Diana", "Okafor", "password123"},
	}

	userIDs := make([]uint, 0, len(testUsers))

	for _, userData := range testUsers {
		var existing model.User
		result := db.Where("username = ?", userData.username).First(&existing)
		if result.Error == nil {
			log.Info("User %s already exists, skipping", userData.username)
			userIDs = append(userIDs, existing.ID)
			continue
		}

		hashedPassword, _ := bcrypt.GenerateFromPassword([]byte(userData.password), bcrypt.DefaultCost)

		user := &model.User{
			Username:  userData.username,
			FirstName: userData.firstName,
			LastName:  userData.lastName,
			Password:  string(hashedPassword),
		}
		if err := db.Create(user).Error; err != nil {
			log.Error("Failed to create user %s: %v", user.Username, err)
			continue
		}

		log.Info("Created user: %s", user.Username)
		userIDs = append(userIDs, user.ID)
	}

	if len(userIDs) == 0 {
		return fmt.Errorf("no users available for seeding")
	}

	categoryIDs, err := seedCategories(db, log)
	if err != nil {
		return err
	}

	postIDs := make([]uint, 0, len(userIDs)*2)
	for i, ownerID := range userIDs {
		for j := 0; j < 2; j++ {
			title := fmt.Sprintf("Seed Post %d-%d", i+1, j+1)

			var existing model.Post
			if db.Where("title = ?", title).First(&existing).Error == nil {
				log.Info("Post %q already exists, skipping", title)
				postIDs = append(postIDs, existing.ID)
				continue
			}

			categoryID := categoryIDs[(i+j)%len(categoryIDs)]
			post := &model.Post{
				Title:      title,
				Body:       fmt.Sprintf("Seeded body for post %d by user %d.", j+1, ownerID),
				OwnerID:    ownerID,
				CategoryID: &categoryID,
			}
			if err := db.Create(post).Error; err != nil {
				log.Error("Failed to create post %q: %v", title, err)
				continue
			}

			log.Info("Created post: %s", post.Title)
			postIDs = append(postIDs, post.ID)
		}
	}

	// Every user comments on and likes the first post they do not own,
	// which gives the API some cross-user data to read back.
	for _, ownerID := range userIDs {
		for _, postID := range postIDs {
			var post model.Post
			if err := db.First(&post, postID).Error; err != nil {
				continue
			}
			if post.OwnerID == ownerID {
				continue
			}

			comment := &model.Comment{
				PostID:  postID,
				OwnerID: ownerID,
				Body:    fmt.Sprintf("Seeded comment from user %d.", ownerID),
			}
			if err := db.Create(comment).Error; err != nil {
				log.Error("Failed to create comment: %v", err)
			}

			like := &model.Like{PostID: postID, OwnerID: ownerID}
			if err := db.Create(like).Error; err != nil {
				log.Info("Like already exists for user %d on post %d", ownerID, postID)
			}

			favorite := &model.Favorite{PostID: postID, OwnerID: ownerID}
			if err := db.Create(favorite).Error; err != nil {
				log.Info("Favorite already exists for user %d on post %d", ownerID, postID)
			}
			break
		}
	}

	return nil
}

func seedCategories(db *gorm.DB, log *logger.Logger) ([]uint, error) {
	roots := []string{"Tech", "Life"}
	children := map[string][]string{
		"Tech": {"Go", "Databases"},
		"Life": {"Travel"},
	}

	ids := make([]uint, 0, 8)
	for _, name := range roots {
		root, err := findOrCreateCategory(db, name, nil)
		if err != nil {
			return nil, err
		}
		log.Info("Category ready: %s", name)
		ids = append(ids, root.ID)

		for _, childName := range children[name] {
			child, err := findOrCreateCategory(db, childName, &root.ID)
			if err != nil {
				return nil, err
			}
			ids = append(ids, child.ID)
		}
	}
	return ids, nil
}

func findOrCreateCategory(db *gorm.DB, name string, parentID *uint) (*model.Category, error) {
	var existing model.Category
	if db.Where("name = ?", name).First(&existing).Error == nil {
		return &existing, nil
	}

	category := &model.Category{Name: name, ParentID: parentID}
	if err := db.Create(category).Error; err != nil {
		return nil, fmt.Errorf("failed to create category %q: %w", name, err)
	}
	return category, nil
}
