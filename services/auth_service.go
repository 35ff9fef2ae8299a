package services

import (
	"errors"
	"strings"
	"time"

	"github.com/sudaisamin20/Food-Delivery-Website-Backend/entity"
	"github.com/sudaisamin20/Food-Delivery-Website-Backend/repository"
	"github.com/sudaisamin20/Food-Delivery-Website-Backend/utils"

	"gorm.io/gorm"
)

// AuthService handles customer accounts, profiles and favorites.
type AuthService struct {
	userRepo  *repository.UserRepository
	itemRepo  *repository.ItemRepository
	restRepo  *repository.RestaurantRepository
	jwtSecret string
	jwtTTL    time.Duration
}

func NewAuthService(repo *repository.UserRepository, items *repository.ItemRepository, rests *repository.RestaurantRepository, secret string, ttl time.Duration) *AuthService {
	return &AuthService{
		userRepo:  repo,
		itemRepo:  items,
		restRepo:  rests,
		jwtSecret: secret,
		jwtTTL:    ttl,
	}
}

type UserRegisterIn struct {
	Fullname string `json:"fullname"`
	Email    string `json:"email"`
	Phoneno  string `json:"phoneno"`
	Password string `json:"password"`
}

type UserAuthResult struct {
	Token string       `json:"token"`
	User  *entity.User `json:"user"`
}

const invalidLogin = "Invalid Email or Password, Please try again with correct credentials"

// Register creates a customer; the email must be unused.
func (s *AuthService) Register(in UserRegisterIn) (*UserAuthResult, error) {
	if err := requireFields(
		field{"fullname", in.Fullname},
		field{"email", in.Email},
		field{"phoneno", in.Phoneno},
		field{"password", in.Password},
	); err != nil {
		return nil, err
	}
	email := normEmail(in.Email)

	taken, err := s.userRepo.EmailTaken(email, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, invalid("User with this email already exists")
	}

	hashed, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	user := &entity.User{
		Fullname: strings.TrimSpace(in.Fullname),
		Email:    email,
		Phoneno:  strings.TrimSpace(in.Phoneno),
		Password: hashed,
		Role:     entity.RoleUser,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}
	return s.issue(user)
}

// Login checks the password and issues a token.
func (s *AuthService) Login(email, password string) (*UserAuthResult, error) {
	if err := requireFields(field{"email", email}, field{"password", password}); err != nil {
		return nil, err
	}
	user, err := s.userRepo.FindByEmail(normEmail(email))
	if err != nil {
		if isNotFound(err) {
			return nil, badCreds(invalidLogin)
		}
		return nil, err
	}
	if !utils.CheckPassword(user.Password, password) {
		return nil, badCreds(invalidLogin)
	}
	return s.issue(user)
}

func (s *AuthService) issue(user *entity.User) (*UserAuthResult, error) {
	token, err := utils.GenerateToken(user.ID, user.Role, s.jwtSecret, s.jwtTTL)
	if err != nil {
		return nil, err
	}
	return &UserAuthResult{Token: token, User: user}, nil
}

func (s *AuthService) GetProfile(userID uint) (*entity.User, error) {
	u, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, orNotFound(err, "User not found")
	}
	return u, nil
}

type ProfileUpdateIn struct {
	Fullname        *string `json:"fullname"`
	Email           *string `json:"email"`
	Phoneno         *string `json:"phoneno"`
	CurrentPassword string  `json:"currentPassword"`
	NewPassword     string  `json:"newPassword"`
}

// UpdateProfile applies the given fields. A new password needs the current one.
func (s *AuthService) UpdateProfile(userID uint, in ProfileUpdateIn) (*entity.User, error) {
	user, err := s.GetProfile(userID)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if in.Fullname != nil && strings.TrimSpace(*in.Fullname) != "" {
		updates["fullname"] = strings.TrimSpace(*in.Fullname)
	}
	if in.Phoneno != nil && strings.TrimSpace(*in.Phoneno) != "" {
		updates["phoneno"] = strings.TrimSpace(*in.Phoneno)
	}
	if in.Email != nil && strings.TrimSpace(*in.Email) != "" {
		email := normEmail(*in.Email)
		taken, err := s.userRepo.EmailTaken(email, userID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, invalid("Email is already in use by another account")
		}
		updates["email"] = email
	}
	if in.NewPassword != "" {
		if in.CurrentPassword == "" {
			return nil, invalid("Current password is required to set a new password")
		}
		if !utils.CheckPassword(user.Password, in.CurrentPassword) {
			return nil, badCreds("Current password is incorrect")
		}
		hashed, err := utils.HashPassword(in.NewPassword)
		if err != nil {
			return nil, err
		}
		updates["password"] = hashed
	}

	if len(updates) > 0 {
		if err := s.userRepo.Updates(userID, updates); err != nil {
			return nil, err
		}
	}
	return s.GetProfile(userID)
}

func (s *AuthService) SetProfileImage(userID uint, url string) (*entity.User, error) {
	if err := s.userRepo.Updates(userID, map[string]any{"profile_image": url}); err != nil {
		return nil, err
	}
	return s.GetProfile(userID)
}

// ---------------- Favorites ----------------

type FavoriteRestaurantsView struct {
	FavoriteRestaurants     []uint              `json:"favoriteRestaurants"`
	FavoriteRestaurantsData []entity.Restaurant `json:"favoriteRestaurantsData"`
	Link                    []string            `json:"link"`
}

func (s *AuthService) FavoriteRestaurants(userID uint) (*FavoriteRestaurantsView, error) {
	favs, err := s.userRepo.ListFavoriteRestaurants(userID)
	if err != nil {
		return nil, err
	}
	out := &FavoriteRestaurantsView{
		FavoriteRestaurants:     make([]uint, 0, len(favs)),
		FavoriteRestaurantsData: make([]entity.Restaurant, 0, len(favs)),
		Link:                    make([]string, 0, len(favs)),
	}
	for _, f := range favs {
		out.FavoriteRestaurants = append(out.FavoriteRestaurants, f.RestaurantID)
		out.FavoriteRestaurantsData = append(out.FavoriteRestaurantsData, f.Restaurant)
		out.Link = append(out.Link, f.Link)
	}
	return out, nil
}

func (s *AuthService) AddFavoriteRestaurant(userID, restaurantID uint, link string) ([]uint, error) {
	if restaurantID == 0 {
		return nil, invalid("restaurantId is required")
	}
	if _, err := s.restRepo.FindByID(restaurantID); err != nil {
		return nil, orNotFound(err, "Restaurant not found")
	}
	err := s.userRepo.AddFavoriteRestaurant(&entity.FavoriteRestaurant{
		UserID: userID, RestaurantID: restaurantID, Link: link, AddedAt: time.Now(),
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, invalid("Restaurant already in favorites")
	}
	if err != nil {
		return nil, err
	}
	return s.favoriteRestaurantIDs(userID)
}

func (s *AuthService) RemoveFavoriteRestaurant(userID, restaurantID uint) ([]uint, error) {
	if err := s.userRepo.RemoveFavoriteRestaurant(userID, restaurantID); err != nil {
		return nil, err
	}
	return s.favoriteRestaurantIDs(userID)
}

func (s *AuthService) favoriteRestaurantIDs(userID uint) ([]uint, error) {
	v, err := s.FavoriteRestaurants(userID)
	if err != nil {
		return nil, err
	}
	return v.FavoriteRestaurants, nil
}

type FavoriteItemsView struct {
	FavoriteItems     []uint        `json:"favoriteItems"`
	FavoriteItemsData []entity.Item `json:"favoriteItemsData"`
	Link              []string      `json:"link"`
}

func (s *AuthService) FavoriteItems(userID uint) (*FavoriteItemsView, error) {
	favs, err := s.userRepo.ListFavoriteItems(userID)
	if err != nil {
		return nil, err
	}
	out := &FavoriteItemsView{
		FavoriteItems:     make([]uint, 0, len(favs)),
		FavoriteItemsData: make([]entity.Item, 0, len(favs)),
		Link:              make([]string, 0, len(favs)),
	}
	for _, f := range favs {
		out.FavoriteItems = append(out.FavoriteItems, f.ItemID)
		out.FavoriteItemsData = append(out.FavoriteItemsData, f.Item)
		out.Link = append(out.Link, f.Link)
	}
	return out, nil
}

func (s *AuthService) AddFavoriteItem(userID, itemID uint, link string) ([]uint, error) {
	if itemID == 0 {
		return nil, invalid("itemId is required")
	}
	if _, err := s.itemRepo.FindByID(itemID); err != nil {
		return nil, orNotFound(err, "Item not found")
	}
	err := s.userRepo.AddFavoriteItem(&entity.FavoriteItem{
		UserID: userID, ItemID: itemID, Link: link, AddedAt: time.Now(),
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, invalid("Item already in favorites")
	}
	if err != nil {
		return nil, err
	}
	return s.favoriteItemIDs(userID)
}

func (s *AuthService) RemoveFavoriteItem(userID, itemID uint) ([]uint, error) {
	if err := s.userRepo.RemoveFavoriteItem(userID, itemID); err != nil {
		return nil, err
	}
	return s.favoriteItemIDs(userID)
}

func (s *AuthService) favoriteItemIDs(userID uint) ([]uint, error) {
	v, err := s.FavoriteItems(userID)
	if err != nil {
		return nil, err
	}
	return v.FavoriteItems, nil
}
