//go:build e2e

package e2e_test

import (
	"errors"
	"fmt"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/selector-project/selector-manager/api/v1alpha1"
	"github.com/selector-project/selector-manager/pkg/client"
)

var _ = Describe("Selector evaluation", func() {
	var createdIDs []string

	uniqueID := func(prefix string) string {
		return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
	}

	create := func(sel v1alpha1.Selector, id string) {
		created, err := apiClient.CreateSelector(ctx, sel, &id)
		Expect(err).NotTo(HaveOccurred())
		createdIDs = append(createdIDs, *created.Id)
	}

	BeforeEach(func() {
		createdIDs = nil
	})

	AfterEach(func() {
		for _, id := range createdIDs {
			_ = apiClient.DeleteSelector(ctx, id)
		}
	})

	It("should evaluate a stored selector", func() {
		id := uniqueID("e2e-eval")
		create(v1alpha1.Selector{
			DisplayName: ptr("E2E Eval " + id),
			Expression:  ptr("environment = production"),
			MatchLabels: ptr(map[string]string{"app": "nginx"}),
		}, id)

		matched, err := apiClient.EvaluateSelector(ctx, id, map[string]string{
			"environment": "production",
			"app":         "nginx",
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(matched).To(BeTrue())

		matched, err = apiClient.EvaluateSelector(ctx, id, map[string]string{
			"environment": "staging",
			"app":         "nginx",
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(matched).To(BeFalse())
	})

	It("should return not found for an unknown selector", func() {
		_, err := apiClient.EvaluateSelector(ctx, "e2e-no-such-selector", map[string]string{})

		Expect(errors.Is(err, client.ErrSelectorNotFound)).To(BeTrue())
	})

	It("should evaluate an ad hoc selector", func() {
		matched, err := apiClient.EvaluateAdHoc(ctx, v1alpha1.AdHocEvaluateRequest{
			Expression: ptr("tier notin (maintenance), app"),
			Labels: map[string]string{
				"tier": "frontend",
				"app":  "nginx",
			},
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(matched).To(BeTrue())
	})

	It("should reject an ad hoc request without selector content", func() {
		_, err := apiClient.EvaluateAdHoc(ctx, v1alpha1.AdHocEvaluateRequest{
			Labels: map[string]string{"app": "nginx"},
		})

		Expect(errors.Is(err, client.ErrInvalidRequest)).To(BeTrue())
	})

	It("should match labels against enabled selectors only", func() {
		enabledID := uniqueID("e2e-match-on")
		disabledID := uniqueID("e2e-match-off")
		labels := map[string]string{"e2e-match-key": enabledID}

		create(v1alpha1.Selector{
			DisplayName: ptr("E2E Match On " + enabledID),
			MatchLabels: ptr(labels),
		}, enabledID)
		create(v1alpha1.Selector{
			DisplayName: ptr("E2E Match Off " + disabledID),
			MatchLabels: ptr(labels),
			Enabled:     ptr(false),
		}, disabledID)

		matching, err := apiClient.MatchLabels(ctx, labels)
		Expect(err).NotTo(HaveOccurred())
		Expect(matching).To(ContainElement(enabledID))
		Expect(matching).NotTo(ContainElement(disabledID))
	})
})
