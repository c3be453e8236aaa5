package services

import "testing"

func TestCategoryCRUD(t *testing.T) {
	db := setupTestDB(t)
	seedOwner(t, db, "owner@example.com")

	if CreateCategory(db, "ghost@example.com", "Services", "") {
		t.Fatal("unknown user must fail")
	}
	if CreateCategory(db, "owner@example.com", "", "") {
		t.Fatal("missing name must fail")
	}
	if !CreateCategory(db, "owner@example.com", "Services", "Prestations") {
		t.Fatal("create failed")
	}

	categories := ListCategories(db, "owner@example.com")
	if len(categories) != 1 || categories[0].Name != "Services" {
		t.Fatalf("got %v", categories)
	}
	id := categories[0].Id

	if !UpdateCategory(db, "owner@example.com", id, "Conseil", "") {
		t.Fatal("update failed")
	}
	if UpdateCategory(db, "other@example.com", id, "Hijack", "") {
		t.Fatal("foreign owner must not update")
	}
	categories = ListCategories(db, "owner@example.com")
	if categories[0].Name != "Conseil" || categories[0].Description != "" {
		t.Fatalf("update not applied: %+v", categories[0])
	}

	if DeleteCategory(db, "owner@example.com", "missing") {
		t.Fatal("unknown category must fail")
	}
	if !DeleteCategory(db, "owner@example.com", id) {
		t.Fatal("delete failed")
	}
	if n := len(ListCategories(db, "owner@example.com")); n != 0 {
		t.Fatalf("%d categories left", n)
	}
}

func TestProductCRUDAndCategoryFilter(t *testing.T) {
	db := setupTestDB(t)
	seedOwner(t, db, "owner@example.com")

	if !CreateCategory(db, "owner@example.com", "Matériel", "") {
		t.Fatal("create category failed")
	}
	categoryId := ListCategories(db, "owner@example.com")[0].Id

	if CreateProduct(db, "ghost@example.com", "Widget", 10, "", "") {
		t.Fatal("unknown user must fail")
	}
	if CreateProduct(db, "owner@example.com", "Widget", -1, "", "") {
		t.Fatal("negative price must fail")
	}
	if !CreateProduct(db, "owner@example.com", "Widget", 12.5, categoryId, "petit") {
		t.Fatal("create failed")
	}
	if !CreateProduct(db, "owner@example.com", "Forfait", 500, "", "") {
		t.Fatal("create without category failed")
	}

	all := ListProducts(db, "owner@example.com", "")
	if len(all) != 2 {
		t.Fatalf("got %d products, want 2", len(all))
	}
	inCategory := ListProducts(db, "owner@example.com", categoryId)
	if len(inCategory) != 1 || inCategory[0].Name != "Widget" {
		t.Fatalf("category filter: got %v", inCategory)
	}
	if inCategory[0].Category == nil || inCategory[0].Category.Name != "Matériel" {
		t.Fatal("category not preloaded")
	}

	productId := inCategory[0].Id
	if !UpdateProduct(db, "owner@example.com", productId, "Widget XL", 15, categoryId, "") {
		t.Fatal("update failed")
	}
	if UpdateProduct(db, "other@example.com", productId, "Hijack", 1, "", "") {
		t.Fatal("foreign owner must not update")
	}

	if !DeleteProduct(db, "owner@example.com", productId) {
		t.Fatal("delete failed")
	}
	if n := len(ListProducts(db, "owner@example.com", "")); n != 1 {
		t.Fatalf("%d products left, want 1", n)
	}
}

func TestUnknownUserListsAreEmptyNotErrors(t *testing.T) {
	db := setupTestDB(t)

	if got := ListCategories(db, "nobody@example.com"); got == nil || len(got) != 0 {
		t.Fatalf("categories: got %v, want empty list", got)
	}
	if got := ListProducts(db, "nobody@example.com", ""); got == nil || len(got) != 0 {
		t.Fatalf("products: got %v, want empty list", got)
	}
	if got := ListCategories(db, ""); len(got) != 0 {
		t.Fatalf("missing email: got %v", got)
	}
}
