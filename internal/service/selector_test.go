package service_test

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/selector-project/selector-manager/api/v1alpha1"
	selectorengine "github.com/selector-project/selector-manager/internal/selector"
	"github.com/selector-project/selector-manager/internal/service"
	"github.com/selector-project/selector-manager/internal/store"
	"github.com/selector-project/selector-manager/internal/store/model"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func strPtr(s string) *string { return &s }

func labelsPtr(m map[string]string) *map[string]string { return &m }

var _ = Describe("SelectorService", func() {
	var (
		db              *gorm.DB
		dataStore       store.Store
		selectorService service.SelectorService
		ctx             context.Context
	)

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(db.AutoMigrate(&model.Selector{})).To(Succeed())

		dataStore = store.NewStore(db)
		selectorService = service.NewSelectorService(dataStore, selectorengine.DefaultLimits())
		ctx = context.Background()
	})

	AfterEach(func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})

	Describe("CreateSelector", func() {
		It("should create selector with client-specified ID", func() {
			clientID := "my-custom-selector"
			sel := v1alpha1.Selector{
				DisplayName: strPtr("Test Selector"),
				Expression:  strPtr("environment = production, tier in (frontend, backend)"),
			}

			created, err := selectorService.CreateSelector(ctx, sel, &clientID)

			Expect(err).To(BeNil())
			Expect(created).NotTo(BeNil())
			Expect(*created.Id).To(Equal("my-custom-selector"))
			Expect(*created.Path).To(Equal("selectors/my-custom-selector"))
			Expect(created.DisplayName).NotTo(BeNil())
			Expect(*created.DisplayName).To(Equal("Test Selector"))
			Expect(*created.Enabled).To(BeTrue()) // Default value
			Expect(created.CreateTime).NotTo(BeNil())
		})

		It("should create selector with server-generated UUID", func() {
			sel := v1alpha1.Selector{
				DisplayName: strPtr("Test Selector"),
				MatchLabels: labelsPtr(map[string]string{"app": "nginx"}),
			}

			created, err := selectorService.CreateSelector(ctx, sel, nil)

			Expect(err).To(BeNil())
			Expect(created).NotTo(BeNil())
			Expect(*created.Id).NotTo(BeEmpty())
			Expect(*created.Path).To(HavePrefix("selectors/"))
			// UUID format validation
			Expect(*created.Id).To(MatchRegexp(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`))
		})

		It("should create selector from matchExpressions only", func() {
			clientID := "expressions-only"
			sel := v1alpha1.Selector{
				DisplayName: strPtr("Expressions Only"),
				MatchExpressions: &[]v1alpha1.MatchExpression{
					{Key: "tier", Operator: "In", Values: []string{"frontend", "backend"}},
					{Key: "legacy", Operator: "DoesNotExist"},
				},
			}

			created, err := selectorService.CreateSelector(ctx, sel, &clientID)

			Expect(err).To(BeNil())
			Expect(created.MatchExpressions).NotTo(BeNil())
			Expect(*created.MatchExpressions).To(HaveLen(2))
		})

		It("should validate display_name is non-empty", func() {
			sel := v1alpha1.Selector{
				DisplayName: strPtr("   "),
				Expression:  strPtr("app=nginx"),
			}

			_, err := selectorService.CreateSelector(ctx, sel, nil)

			Expect(err).NotTo(BeNil())
			serviceErr, ok := err.(*service.ServiceError)
			Expect(ok).To(BeTrue())
			Expect(serviceErr.Type).To(Equal(service.ErrorTypeInvalidArgument))
			Expect(serviceErr.Message).To(ContainSubstring("display_name is required"))
		})

		It("should require at least one selector form", func() {
			sel := v1alpha1.Selector{
				DisplayName: strPtr("Empty Selector"),
			}

			_, err := selectorService.CreateSelector(ctx, sel, nil)

			Expect(err).NotTo(BeNil())
			serviceErr, ok := err.(*service.ServiceError)
			Expect(ok).To(BeTrue())
			Expect(serviceErr.Type).To(Equal(service.ErrorTypeInvalidArgument))
			Expect(serviceErr.Message).To(ContainSubstring("selector content is required"))
		})

		It("should reject an expression that does not parse", func() {
			sel := v1alpha1.Selector{
				DisplayName: strPtr("Bad Expression"),
				Expression:  strPtr("environment in (production"),
			}

			_, err := selectorService.CreateSelector(ctx, sel, nil)

			Expect(err).NotTo(BeNil())
			serviceErr, ok := err.(*service.ServiceError)
			Expect(ok).To(BeTrue())
			Expect(serviceErr.Type).To(Equal(service.ErrorTypeInvalidArgument))
			Expect(serviceErr.Detail).To(ContainSubstring("unclosed"))
		})

		It("should reject matchLabels with an invalid key", func() {
			sel := v1alpha1.Selector{
				DisplayName: strPtr("Bad Labels"),
				MatchLabels: labelsPtr(map[string]string{"-leading-dash": "x"}),
			}

			_, err := selectorService.CreateSelector(ctx, sel, nil)

			Expect(err).NotTo(BeNil())
			serviceErr, ok := err.(*service.ServiceError)
			Expect(ok).To(BeTrue())
			Expect(serviceErr.Type).To(Equal(service.ErrorTypeInvalidArgument))
		})

		It("should reject matchExpressions with an unknown operator", func() {
			sel := v1alpha1.Selector{
				DisplayName: strPtr("Bad Operator"),
				MatchExpressions: &[]v1alpha1.MatchExpression{
					{Key: "app", Operator: "Contains", Values: []string{"x"}},
				},
			}

			_, err := selectorService.CreateSelector(ctx, sel, nil)

			Expect(err).NotTo(BeNil())
			serviceErr, ok := err.(*service.ServiceError)
			Expect(ok).To(BeTrue())
			Expect(serviceErr.Type).To(Equal(service.ErrorTypeInvalidArgument))
		})

		It("should reject matchExpressions with missing values for In", func() {
			sel := v1alpha1.Selector{
				DisplayName: strPtr("Missing Values"),
				MatchExpressions: &[]v1alpha1.MatchExpression{
					{Key: "app", Operator: "In"},
				},
			}

			_, err := selectorService.CreateSelector(ctx, sel, nil)

			Expect(err).NotTo(BeNil())
			serviceErr, ok := err.(*service.ServiceError)
			Expect(ok).To(BeTrue())
			Expect(serviceErr.Type).To(Equal(service.ErrorTypeInvalidArgument))
		})

		It("should validate ID format per AEP-122", func() {
			invalidID := "Invalid-ID-With-CAPS"
			sel := v1alpha1.Selector{
				DisplayName: strPtr("Test Selector"),
				Expression:  strPtr("app=nginx"),
			}

			_, err := selectorService.CreateSelector(ctx, sel, &invalidID)

			Expect(err).NotTo(BeNil())
			serviceErr, ok := err.(*service.ServiceError)
			Expect(ok).To(BeTrue())
			Expect(serviceErr.Type).To(Equal(service.ErrorTypeInvalidArgument))
			Expect(serviceErr.Message).To(ContainSubstring("Invalid selector ID format"))
		})

		It("should return AlreadyExists error for duplicate ID", func() {
			clientID := "duplicate-selector"
			sel := v1alpha1.Selector{
				DisplayName: strPtr("Test Selector"),
				Expression:  strPtr("app=nginx"),
			}

			_, err := selectorService.CreateSelector(ctx, sel, &clientID)
			Expect(err).To(BeNil())

			sel.DisplayName = strPtr("Other Name")
			_, err = selectorService.CreateSelector(ctx, sel, &clientID)

			Expect(err).NotTo(BeNil())
			serviceErr, ok := err.(*service.ServiceError)
			Expect(ok).To(BeTrue())
			Expect(serviceErr.Type).To(Equal(service.ErrorTypeAlreadyExists))
			Expect(serviceErr.Detail).To(ContainSubstring("duplicate-selector"))
		})

		It("should return AlreadyExists when creating two selectors with same display_name", func() {
			sel := v1alpha1.Selector{
				DisplayName: strPtr("Unique Display Name"),
				Expression:  strPtr("app=nginx"),
			}
			id1 := "selector-dn-1"
			_, err := selectorService.CreateSelector(ctx, sel, &id1)
			Expect(err).To(BeNil())

			id2 := "selector-dn-2"
			_, err = selectorService.CreateSelector(ctx, sel, &id2)

			Expect(err).NotTo(BeNil())
			serviceErr, ok := err.(*service.ServiceError)
			Expect(ok).To(BeTrue())
			Expect(serviceErr.Type).To(Equal(service.ErrorTypeAlreadyExists))
			Expect(serviceErr.Message).To(ContainSubstring("display name"))
		})

		It("should honor explicit values for optional fields", func() {
			clientID := "explicit-values"
			enabled := false
			description := "Custom description"
			sel := v1alpha1.Selector{
				DisplayName: strPtr("Test Selector"),
				Expression:  strPtr("app=nginx"),
				Enabled:     &enabled,
				Description: &description,
			}

			created, err := selectorService.CreateSelector(ctx, sel, &clientID)

			Expect(err).To(BeNil())
			Expect(*created.Enabled).To(BeFalse())
			Expect(*created.Description).To(Equal("Custom description"))
		})
	})

	Describe("GetSelector", func() {
		It("should get existing selector", func() {
			clientID := "get-test"
			sel := v1alpha1.Selector{
				DisplayName: strPtr("Test Selector"),
				Expression:  strPtr("app=nginx"),
				MatchLabels: labelsPtr(map[string]string{"env": "prod"}),
			}
			created, err := selectorService.CreateSelector(ctx, sel, &clientID)
			Expect(err).To(BeNil())

			retrieved, err := selectorService.GetSelector(ctx, "get-test")

			Expect(err).To(BeNil())
			Expect(retrieved).NotTo(BeNil())
			Expect(*retrieved.Id).To(Equal("get-test"))
			Expect(*retrieved.Path).To(Equal("selectors/get-test"))
			Expect(*retrieved.Expression).To(Equal("app=nginx"))
			Expect(*retrieved.MatchLabels).To(Equal(map[string]string{"env": "prod"}))
			Expect(retrieved.CreateTime).To(Equal(created.CreateTime))
		})

		It("should return NotFound error for non-existent selector", func() {
			_, err := selectorService.GetSelector(ctx, "non-existent")

			Expect(err).NotTo(BeNil())
			serviceErr, ok := err.(*service.ServiceError)
			Expect(ok).To(BeTrue())
			Expect(serviceErr.Type).To(Equal(service.ErrorTypeNotFound))
			Expect(serviceErr.Message).To(ContainSubstring("Selector not found"))
		})
	})

	Describe("ListSelectors", func() {
		BeforeEach(func() {
			selectors := []struct {
				id      string
				enabled bool
			}{
				{"selector-1", true},
				{"selector-2", true},
				{"selector-3", false},
				{"selector-4", false},
			}

			for _, s := range selectors {
				enabled := s.enabled
				displayName := "Test " + s.id
				sel := v1alpha1.Selector{
					DisplayName: &displayName,
					Expression:  strPtr("app=nginx"),
					Enabled:     &enabled,
				}
				id := s.id
				_, err := selectorService.CreateSelector(ctx, sel, &id)
				Expect(err).To(BeNil())
			}
		})

		It("should list all selectors with default ordering", func() {
			result, err := selectorService.ListSelectors(ctx, nil, nil, nil, nil)

			Expect(err).To(BeNil())
			Expect(result).NotTo(BeNil())
			Expect(result.Selectors).To(HaveLen(4))
			// Default order is display_name ASC, id ASC
			Expect(*result.Selectors[0].Id).To(Equal("selector-1"))
			Expect(*result.Selectors[3].Id).To(Equal("selector-4"))
		})

		It("should filter by enabled=true", func() {
			filter := "enabled=true"
			result, err := selectorService.ListSelectors(ctx, &filter, nil, nil, nil)

			Expect(err).To(BeNil())
			Expect(result.Selectors).To(HaveLen(2))
			for _, s := range result.Selectors {
				Expect(*s.Enabled).To(BeTrue())
			}
		})

		It("should filter by enabled=false", func() {
			filter := "enabled=false"
			result, err := selectorService.ListSelectors(ctx, &filter, nil, nil, nil)

			Expect(err).To(BeNil())
			Expect(result.Selectors).To(HaveLen(2))
			for _, s := range result.Selectors {
				Expect(*s.Enabled).To(BeFalse())
			}
		})

		It("should order by id desc", func() {
			orderBy := "id desc"
			result, err := selectorService.ListSelectors(ctx, nil, &orderBy, nil, nil)

			Expect(err).To(BeNil())
			Expect(result.Selectors).To(HaveLen(4))
			Expect(*result.Selectors[0].Id).To(Equal("selector-4"))
			Expect(*result.Selectors[3].Id).To(Equal("selector-1"))
		})

		It("should support pagination", func() {
			pageSize := int32(3)
			result, err := selectorService.ListSelectors(ctx, nil, nil, nil, &pageSize)

			Expect(err).To(BeNil())
			Expect(result.Selectors).To(HaveLen(3))
			Expect(result.NextPageToken).NotTo(BeNil())

			result2, err := selectorService.ListSelectors(ctx, nil, nil, result.NextPageToken, &pageSize)

			Expect(err).To(BeNil())
			Expect(result2.Selectors).To(HaveLen(1))
			Expect(result2.NextPageToken).To(BeNil()) // No more pages
		})

		It("should validate page size minimum", func() {
			pageSize := int32(0)
			_, err := selectorService.ListSelectors(ctx, nil, nil, nil, &pageSize)

			Expect(err).NotTo(BeNil())
			serviceErr, ok := err.(*service.ServiceError)
			Expect(ok).To(BeTrue())
			Expect(serviceErr.Type).To(Equal(service.ErrorTypeInvalidArgument))
			Expect(serviceErr.Message).To(ContainSubstring("Invalid page size"))
		})

		It("should validate page size maximum", func() {
			pageSize := int32(1001)
			_, err := selectorService.ListSelectors(ctx, nil, nil, nil, &pageSize)

			Expect(err).NotTo(BeNil())
			serviceErr, ok := err.(*service.ServiceError)
			Expect(ok).To(BeTrue())
			Expect(serviceErr.Type).To(Equal(service.ErrorTypeInvalidArgument))
			Expect(serviceErr.Message).To(ContainSubstring("Invalid page size"))
		})

		It("should return error for invalid filter", func() {
			filter := "invalid_field='value'"
			_, err := selectorService.ListSelectors(ctx, &filter, nil, nil, nil)

			Expect(err).NotTo(BeNil())
			serviceErr, ok := err.(*service.ServiceError)
			Expect(ok).To(BeTrue())
			Expect(serviceErr.Type).To(Equal(service.ErrorTypeInvalidArgument))
		})

		It("should return error for invalid order by", func() {
			orderBy := "invalid_field asc"
			_, err := selectorService.ListSelectors(ctx, nil, &orderBy, nil, nil)

			Expect(err).NotTo(BeNil())
			serviceErr, ok := err.(*service.ServiceError)
			Expect(ok).To(BeTrue())
			Expect(serviceErr.Type).To(Equal(service.ErrorTypeInvalidArgument))
		})
	})

	Describe("UpdateSelector", func() {
		It("should update mutable fields (partial patch)", func() {
			clientID := "update-test"
			enabled := true
			sel := v1alpha1.Selector{
				DisplayName: strPtr("Original Name"),
				Expression:  strPtr("app=nginx"),
				Enabled:     &enabled,
			}
			created, err := selectorService.CreateSelector(ctx, sel, &clientID)
			Expect(err).To(BeNil())

			newEnabled := false
			patch := &v1alpha1.Selector{
				DisplayName: strPtr("Updated Name"),
				Expression:  strPtr("tier in (frontend, backend)"),
				Enabled:     &newEnabled,
				Description: strPtr("Updated description"),
			}

			updated, err := selectorService.UpdateSelector(ctx, "update-test", patch)

			Expect(err).To(BeNil())
			Expect(*updated.DisplayName).To(Equal("Updated Name"))
			Expect(*updated.Expression).To(Equal("tier in (frontend, backend)"))
			Expect(*updated.Enabled).To(BeFalse())
			Expect(*updated.Description).To(Equal("Updated description"))
			Expect(*updated.Id).To(Equal("update-test"))             // ID unchanged
			Expect(updated.CreateTime).To(Equal(created.CreateTime)) // CreateTime unchanged
		})

		It("should keep untouched fields when patch omits them", func() {
			clientID := "partial-patch-test"
			sel := v1alpha1.Selector{
				DisplayName: strPtr("Partial Patch"),
				Expression:  strPtr("app=nginx"),
				MatchLabels: labelsPtr(map[string]string{"env": "prod"}),
			}
			_, err := selectorService.CreateSelector(ctx, sel, &clientID)
			Expect(err).To(BeNil())

			patch := &v1alpha1.Selector{
				DisplayName: strPtr("New Name"),
			}
			updated, err := selectorService.UpdateSelector(ctx, clientID, patch)

			Expect(err).To(BeNil())
			Expect(*updated.DisplayName).To(Equal("New Name"))
			Expect(*updated.Expression).To(Equal("app=nginx"))
			Expect(*updated.MatchLabels).To(Equal(map[string]string{"env": "prod"}))
		})

		It("should reject an invalid expression in patch", func() {
			clientID := "update-expr-test"
			sel := v1alpha1.Selector{
				DisplayName: strPtr("Expr Test"),
				Expression:  strPtr("app=nginx"),
			}
			_, err := selectorService.CreateSelector(ctx, sel, &clientID)
			Expect(err).To(BeNil())

			patch := &v1alpha1.Selector{
				Expression: strPtr("tier in ()"),
			}

			_, err = selectorService.UpdateSelector(ctx, clientID, patch)

			Expect(err).NotTo(BeNil())
			serviceErr, ok := err.(*service.ServiceError)
			Expect(ok).To(BeTrue())
			Expect(serviceErr.Type).To(Equal(service.ErrorTypeInvalidArgument))
		})

		It("should return NotFound error for non-existent selector", func() {
			patch := &v1alpha1.Selector{
				DisplayName: strPtr("Test"),
			}

			_, err := selectorService.UpdateSelector(ctx, "non-existent", patch)

			Expect(err).NotTo(BeNil())
			serviceErr, ok := err.(*service.ServiceError)
			Expect(ok).To(BeTrue())
			Expect(serviceErr.Type).To(Equal(service.ErrorTypeNotFound))
		})

		It("should return AlreadyExists when updating to another selector's display_name", func() {
			idA := "update-dn-a"
			idB := "update-dn-b"
			_, err := selectorService.CreateSelector(ctx, v1alpha1.Selector{
				DisplayName: strPtr("Name A"),
				Expression:  strPtr("app=nginx"),
			}, &idA)
			Expect(err).To(BeNil())
			_, err = selectorService.CreateSelector(ctx, v1alpha1.Selector{
				DisplayName: strPtr("Name B"),
				Expression:  strPtr("app=nginx"),
			}, &idB)
			Expect(err).To(BeNil())

			patch := &v1alpha1.Selector{
				DisplayName: strPtr("Name A"),
			}
			_, err = selectorService.UpdateSelector(ctx, idB, patch)

			Expect(err).NotTo(BeNil())
			serviceErr, ok := err.(*service.ServiceError)
			Expect(ok).To(BeTrue())
			Expect(serviceErr.Type).To(Equal(service.ErrorTypeAlreadyExists))
		})

		// Immutable/readOnly field validation: patch must not change path, id, create_time, update_time.
		It("should reject patch when path is different from existing", func() {
			clientID := "immutable-path-test"
			sel := v1alpha1.Selector{
				DisplayName: strPtr("Path Test"),
				Expression:  strPtr("app=nginx"),
			}
			_, err := selectorService.CreateSelector(ctx, sel, &clientID)
			Expect(err).To(BeNil())

			wrongPath := "selectors/other-id"
			patch := &v1alpha1.Selector{
				Path:        &wrongPath,
				DisplayName: strPtr("Updated"),
			}
			_, err = selectorService.UpdateSelector(ctx, clientID, patch)

			Expect(err).NotTo(BeNil())
			serviceErr, ok := err.(*service.ServiceError)
			Expect(ok).To(BeTrue())
			Expect(serviceErr.Type).To(Equal(service.ErrorTypeInvalidArgument))
			Expect(serviceErr.Message).To(ContainSubstring("path cannot be updated"))
		})

		It("should accept patch when path is same as existing (with mutable change)", func() {
			clientID := "immutable-path-same-test"
			sel := v1alpha1.Selector{
				DisplayName: strPtr("Path Same Test"),
				Expression:  strPtr("app=nginx"),
			}
			created, err := selectorService.CreateSelector(ctx, sel, &clientID)
			Expect(err).To(BeNil())
			Expect(created.Path).NotTo(BeNil())

			patch := &v1alpha1.Selector{
				Path:        created.Path,
				DisplayName: strPtr("Updated Name"),
			}
			updated, err := selectorService.UpdateSelector(ctx, clientID, patch)

			Expect(err).To(BeNil())
			Expect(*updated.DisplayName).To(Equal("Updated Name"))
			Expect(*updated.Path).To(Equal("selectors/" + clientID))
		})

		It("should reject patch when id is different from existing", func() {
			clientID := "immutable-id-test"
			sel := v1alpha1.Selector{
				DisplayName: strPtr("ID Test"),
				Expression:  strPtr("app=nginx"),
			}
			_, err := selectorService.CreateSelector(ctx, sel, &clientID)
			Expect(err).To(BeNil())

			wrongID := "other-id"
			patch := &v1alpha1.Selector{
				Id:          &wrongID,
				DisplayName: strPtr("Updated"),
			}
			_, err = selectorService.UpdateSelector(ctx, clientID, patch)

			Expect(err).NotTo(BeNil())
			serviceErr, ok := err.(*service.ServiceError)
			Expect(ok).To(BeTrue())
			Expect(serviceErr.Type).To(Equal(service.ErrorTypeInvalidArgument))
			Expect(serviceErr.Message).To(ContainSubstring("id cannot be updated"))
		})

		It("should reject patch when create_time is different from existing", func() {
			clientID := "immutable-ctime-test"
			sel := v1alpha1.Selector{
				DisplayName: strPtr("CreateTime Test"),
				Expression:  strPtr("app=nginx"),
			}
			_, err := selectorService.CreateSelector(ctx, sel, &clientID)
			Expect(err).To(BeNil())

			otherTime := time.Now().Add(-24 * time.Hour)
			patch := &v1alpha1.Selector{
				CreateTime:  &otherTime,
				DisplayName: strPtr("Updated"),
			}
			_, err = selectorService.UpdateSelector(ctx, clientID, patch)

			Expect(err).NotTo(BeNil())
			serviceErr, ok := err.(*service.ServiceError)
			Expect(ok).To(BeTrue())
			Expect(serviceErr.Type).To(Equal(service.ErrorTypeInvalidArgument))
			Expect(serviceErr.Message).To(ContainSubstring("create_time cannot be updated"))
		})

		It("should reject patch when update_time is different from existing", func() {
			clientID := "immutable-utime-test"
			sel := v1alpha1.Selector{
				DisplayName: strPtr("UpdateTime Test"),
				Expression:  strPtr("app=nginx"),
			}
			created, err := selectorService.CreateSelector(ctx, sel, &clientID)
			Expect(err).To(BeNil())

			otherTime := time.Now().Add(24 * time.Hour)
			patch := &v1alpha1.Selector{
				UpdateTime:  &otherTime,
				DisplayName: strPtr("Updated"),
			}
			_, err = selectorService.UpdateSelector(ctx, clientID, patch)

			Expect(err).NotTo(BeNil())
			serviceErr, ok := err.(*service.ServiceError)
			Expect(ok).To(BeTrue())
			Expect(serviceErr.Type).To(Equal(service.ErrorTypeInvalidArgument))
			Expect(serviceErr.Message).To(ContainSubstring("update_time cannot be updated"))
			// Ensure existing selector unchanged
			got, _ := selectorService.GetSelector(ctx, clientID)
			Expect(got).NotTo(BeNil())
			Expect(got.UpdateTime).NotTo(BeNil())
			Expect(created.UpdateTime).NotTo(BeNil())
			Expect(got.UpdateTime.Equal(*created.UpdateTime)).To(BeTrue())
		})
	})

	Describe("DeleteSelector", func() {
		It("should delete existing selector", func() {
			clientID := "delete-test"
			sel := v1alpha1.Selector{
				DisplayName: strPtr("Test"),
				Expression:  strPtr("app=nginx"),
			}
			_, err := selectorService.CreateSelector(ctx, sel, &clientID)
			Expect(err).To(BeNil())

			err = selectorService.DeleteSelector(ctx, "delete-test")

			Expect(err).To(BeNil())

			_, err = selectorService.GetSelector(ctx, "delete-test")
			Expect(err).NotTo(BeNil())
			serviceErr, ok := err.(*service.ServiceError)
			Expect(ok).To(BeTrue())
			Expect(serviceErr.Type).To(Equal(service.ErrorTypeNotFound))
		})

		It("should return NotFound error for non-existent selector", func() {
			err := selectorService.DeleteSelector(ctx, "non-existent")

			Expect(err).NotTo(BeNil())
			serviceErr, ok := err.(*service.ServiceError)
			Expect(ok).To(BeTrue())
			Expect(serviceErr.Type).To(Equal(service.ErrorTypeNotFound))
		})
	})
})
