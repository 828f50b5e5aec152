package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartItem est une ligne du panier. Le titre, l'image et le prix sont des
// copies dénormalisées prises au moment de l'ajout, jamais rafraîchies.
type CartItem struct {
	ProductID int     `bson:"productId" json:"productId"`
	Title     string  `bson:"title" json:"title"`
	Image     string  `bson:"image" json:"image"`
	Price     float64 `bson:"price" json:"price"`
	Quantity  int     `bson:"quantity" json:"quantity"`
}

// Cart est le document panier : un seul par utilisateur.
// Version sert aux écritures conditionnelles (voir storage.SaveCart).
type Cart struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	UserID    string             `bson:"userId" json:"userId"`
	Items     []CartItem         `bson:"items" json:"items"`
	Version   int64              `bson:"version" json:"-"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// AddItem incrémente la quantité si le produit est déjà dans le panier,
// sinon ajoute une nouvelle ligne en fin de liste avec quantité 1.
// Les champs dénormalisés d'une ligne existante ne sont pas mis à jour.
func (c *Cart) AddItem(item CartItem) {
	for i := range c.Items {
		if c.Items[i].ProductID == item.ProductID {
			c.Items[i].Quantity++
			return
		}
	}
	item.Quantity = 1
	c.Items = append(c.Items, item)
}

// SetQuantity remplace la quantité de la ligne correspondante.
// Retourne false si le produit n'est pas dans le panier.
func (c *Cart) SetQuantity(productID, quantity int) bool {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items[i].Quantity = quantity
			return true
		}
	}
	return false
}

// RemoveItem retire la ligne correspondante en conservant l'ordre des autres.
// Pas d'erreur si le produit est absent : le panier reste tel quel.
func (c *Cart) RemoveItem(productID int) {
	filtered := c.Items[:0]
	for _, item := range c.Items {
		if item.ProductID != productID {
			filtered = append(filtered, item)
		}
	}
	c.Items = filtered
}

// Clear vide la liste des lignes sans supprimer le document.
func (c *Cart) Clear() {
	c.Items = []CartItem{}
}

// Total calcule le montant du panier sur les prix dénormalisés.
func (c *Cart) Total() float64 {
	total := 0.0
	for _, item := range c.Items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

// ItemCount retourne le nombre total d'articles (somme des quantités).
func (c *Cart) ItemCount() int {
	count := 0
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}
