package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/KhangChau12/PinGallery/app/models"
	"github.com/KhangChau12/PinGallery/internal/pkg/database"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.Exec("PRAGMA foreign_keys = ON").Error)
	require.NoError(t, database.Migrate(db))

	t.Cleanup(func() {
		_ = database.Close(db)
	})

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	user, err := models.CreateUser(username, username+"@example.com", "secret123")
	require.NoError(t, err)
	require.NoError(t, db.Create(user).Error)

	return user
}

func createTestImage(t *testing.T, db *gorm.DB, userID uint, title string) *models.Image {
	t.Helper()

	image := &models.Image{
		UserID:   userID,
		FileName: title + ".jpg",
		Title:    title,
		FileType: "image/jpeg",
	}
	require.NoError(t, db.Create(image).Error)

	return image
}

func TestUserRepositoryCreateAndLookup(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	user, err := models.CreateUser("alice", "alice@example.com", "secret123")
	require.NoError(t, err)
	require.NoError(t, repo.Create(user))
	assert.NotZero(t, user.ID)

	byUsername, err := repo.GetByUsernameOrEmail("alice")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byUsername.ID)

	byEmail, err := repo.GetByUsernameOrEmail("alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	_, err = repo.GetByUsernameOrEmail("nobody")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	exists, err := repo.ExistsByUsernameOrEmail("alice", "other@example.com")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByUsernameOrEmail("bob", "bob@example.com")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestUserRepositoryTakenByOther(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	alice := createTestUser(t, db, "alice")
	createTestUser(t, db, "bob")

	taken, err := repo.UsernameTakenByOther("alice", alice.ID)
	require.NoError(t, err)
	assert.False(t, taken, "own username must not count as taken")

	taken, err = repo.UsernameTakenByOther("bob", alice.ID)
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = repo.EmailTakenByOther("bob@example.com", alice.ID)
	require.NoError(t, err)
	assert.True(t, taken)
}

func TestUserRepositoryGetProfile(t *testing.T) {
	db := setupTestDB(t)
	users := NewUserRepository(db)
	follows := NewFollowRepository(db)

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	carol := createTestUser(t, db, "carol")

	createTestImage(t, db, alice.ID, "one")
	createTestImage(t, db, alice.ID, "two")

	require.NoError(t, follows.Create(&models.Follow{FollowerID: bob.ID, FollowingID: alice.ID}))
	require.NoError(t, follows.Create(&models.Follow{FollowerID: carol.ID, FollowingID: alice.ID}))
	require.NoError(t, follows.Create(&models.Follow{FollowerID: alice.ID, FollowingID: bob.ID}))

	profile, err := users.GetProfile(alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", profile.Username)
	assert.Equal(t, int64(2), profile.ImagesCount)
	assert.Equal(t, int64(2), profile.FollowersCount)
	assert.Equal(t, int64(1), profile.FollowingCount)
	assert.True(t, profile.IsFollowing)

	profile, err = users.GetProfile(alice.ID, 0)
	require.NoError(t, err)
	assert.False(t, profile.IsFollowing)

	_, err = users.GetProfile(9999, 0)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestImageRepositoryListOrderAndPagination(t *testing.T) {
	db := setupTestDB(t)
	repo := NewImageRepository(db)

	alice := createTestUser(t, db, "alice")
	for _, title := range []string{"first", "second", "third"} {
		createTestImage(t, db, alice.ID, title)
	}

	rows, total, err := repo.List(ListImagesParams{Offset: 0, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, rows, 2)
	assert.Equal(t, "third", rows[0].Title, "newest image comes first")
	assert.Equal(t, "second", rows[1].Title)
	assert.Equal(t, "alice", rows[0].Username)

	rows, total, err = repo.List(ListImagesParams{Offset: 2, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, rows, 1)
	assert.Equal(t, "first", rows[0].Title)
}

func TestImageRepositoryListSearch(t *testing.T) {
	db := setupTestDB(t)
	repo := NewImageRepository(db)

	alice := createTestUser(t, db, "alice")
	createTestImage(t, db, alice.ID, "Sunset at the beach")
	createTestImage(t, db, alice.ID, "Mountain trail")
	sunsetDesc := &models.Image{UserID: alice.ID, FileName: "c.jpg", Title: "Harbor", Description: "taken at sunset"}
	require.NoError(t, db.Create(sunsetDesc).Error)

	rows, total, err := repo.List(ListImagesParams{Search: "sunset", Offset: 0, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total, "search matches title and description")
	assert.Len(t, rows, 2)
}

func TestImageRepositoryGetRowCounts(t *testing.T) {
	db := setupTestDB(t)
	images := NewImageRepository(db)
	likes := NewLikeRepository(db, nil)

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	image := createTestImage(t, db, alice.ID, "Sunset")

	require.NoError(t, likes.Create(&models.Like{UserID: bob.ID, ImageID: image.ID}))
	require.NoError(t, db.Create(&models.Comment{UserID: bob.ID, ImageID: image.ID, Content: "nice"}).Error)
	require.NoError(t, db.Create(&models.Comment{UserID: alice.ID, ImageID: image.ID, Content: "thanks"}).Error)

	row, err := images.GetRow(image.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), row.LikesCount)
	assert.Equal(t, int64(2), row.CommentsCount)
	assert.True(t, row.IsLiked)

	row, err = images.GetRow(image.ID, alice.ID)
	require.NoError(t, err)
	assert.False(t, row.IsLiked)

	row, err = images.GetRow(image.ID, 0)
	require.NoError(t, err)
	assert.False(t, row.IsLiked, "anonymous callers never see is_liked")
}

func TestImageRepositoryDeleteCascades(t *testing.T) {
	db := setupTestDB(t)
	images := NewImageRepository(db)
	likes := NewLikeRepository(db, nil)

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	image := createTestImage(t, db, alice.ID, "Sunset")

	require.NoError(t, likes.Create(&models.Like{UserID: bob.ID, ImageID: image.ID}))
	require.NoError(t, db.Create(&models.Comment{UserID: bob.ID, ImageID: image.ID, Content: "nice"}).Error)

	require.NoError(t, images.Delete(image.ID))

	var commentCount, likeCount int64
	require.NoError(t, db.Model(&models.Comment{}).Where("image_id = ?", image.ID).Count(&commentCount).Error)
	require.NoError(t, db.Model(&models.Like{}).Where("image_id = ?", image.ID).Count(&likeCount).Error)
	assert.Zero(t, commentCount, "comments must cascade with the image")
	assert.Zero(t, likeCount, "likes must cascade with the image")
}

func TestLikeRepositoryDuplicateRejected(t *testing.T) {
	db := setupTestDB(t)
	likes := NewLikeRepository(db, nil)

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	image := createTestImage(t, db, alice.ID, "Sunset")

	require.NoError(t, likes.Create(&models.Like{UserID: bob.ID, ImageID: image.ID}))

	err := likes.Create(&models.Like{UserID: bob.ID, ImageID: image.ID})
	assert.Error(t, err, "composite primary key rejects a second like")

	exists, err := likes.Exists(bob.ID, image.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	count, err := likes.CountByImage(image.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	require.NoError(t, likes.Delete(bob.ID, image.ID))

	exists, err = likes.Exists(bob.ID, image.ID)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestLikeRepositoryListUsersByImage(t *testing.T) {
	db := setupTestDB(t)
	likes := NewLikeRepository(db, nil)

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	carol := createTestUser(t, db, "carol")
	image := createTestImage(t, db, alice.ID, "Sunset")

	require.NoError(t, likes.Create(&models.Like{UserID: bob.ID, ImageID: image.ID}))
	require.NoError(t, likes.Create(&models.Like{UserID: carol.ID, ImageID: image.ID}))

	users, total, err := likes.ListUsersByImage(image.ID, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, users, 2)

	usernames := []string{users[0].Username, users[1].Username}
	assert.Contains(t, usernames, "bob")
	assert.Contains(t, usernames, "carol")
}

func TestFollowRepositoryListsAndCounts(t *testing.T) {
	db := setupTestDB(t)
	follows := NewFollowRepository(db)

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	carol := createTestUser(t, db, "carol")

	require.NoError(t, follows.Create(&models.Follow{FollowerID: bob.ID, FollowingID: alice.ID}))
	require.NoError(t, follows.Create(&models.Follow{FollowerID: carol.ID, FollowingID: alice.ID}))
	require.NoError(t, follows.Create(&models.Follow{FollowerID: alice.ID, FollowingID: bob.ID}))

	count, err := follows.CountFollowers(alice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	followers, total, err := follows.ListFollowers(alice.ID, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, followers, 2)

	following, total, err := follows.ListFollowing(alice.ID, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, following, 1)
	assert.Equal(t, "bob", following[0].Username)

	err = follows.Create(&models.Follow{FollowerID: bob.ID, FollowingID: alice.ID})
	assert.Error(t, err, "composite primary key rejects a duplicate edge")

	exists, err := follows.Exists(bob.ID, alice.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, follows.Delete(bob.ID, alice.ID))
	exists, err = follows.Exists(bob.ID, alice.ID)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestCommentRepositoryListByImage(t *testing.T) {
	db := setupTestDB(t)
	comments := NewCommentRepository(db)

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	image := createTestImage(t, db, alice.ID, "Sunset")

	first := &models.Comment{UserID: bob.ID, ImageID: image.ID, Content: "first"}
	require.NoError(t, comments.Create(first))
	second := &models.Comment{UserID: alice.ID, ImageID: image.ID, Content: "second"}
	require.NoError(t, comments.Create(second))

	rows, total, err := comments.ListByImage(image.ID, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, rows, 2)
	assert.Equal(t, "second", rows[0].Content, "newest comment comes first")
	assert.Equal(t, "alice", rows[0].Username)
	assert.Equal(t, "bob", rows[1].Username)

	row, err := comments.GetRow(first.ID)
	require.NoError(t, err)
	assert.Equal(t, "first", row.Content)
	assert.Equal(t, "bob", row.Username)

	require.NoError(t, comments.Delete(first.ID))
	_, err = comments.GetByID(first.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestCommentRepositoryEmptyPageIsEmptySlice(t *testing.T) {
	db := setupTestDB(t)
	comments := NewCommentRepository(db)

	alice := createTestUser(t, db, "alice")
	image := createTestImage(t, db, alice.ID, "Sunset")

	rows, total, err := comments.ListByImage(image.ID, 0, 10)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}
