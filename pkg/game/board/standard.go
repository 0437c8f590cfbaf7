package board

// NewStandard creates the 20-square board the game is played on.
func NewStandard() *Board {
	b, err := New([]*Square{
		{Position: 1, Name: "Go", Kind: KindGo},
		{Position: 2, Name: "Central", Kind: KindProperty, Price: 800, Rent: 90},
		{Position: 3, Name: "Wan Chai", Kind: KindProperty, Price: 700, Rent: 65},
		{Position: 4, Name: "Income Tax", Kind: KindIncomeTax},
		{Position: 5, Name: "Stanley", Kind: KindProperty, Price: 600, Rent: 60},
		{Position: 6, Name: "In Jail/Visiting", Kind: KindJailOrVisiting},
		{Position: 7, Name: "Shek O", Kind: KindProperty, Price: 400, Rent: 10},
		{Position: 8, Name: "Mong Kok", Kind: KindProperty, Price: 500, Rent: 40},
		{Position: 9, Name: "Red Chance", Kind: KindChance},
		{Position: 10, Name: "Tsing Yi", Kind: KindProperty, Price: 400, Rent: 15},
		{Position: 11, Name: "Free Parking", Kind: KindFreeParking},
		{Position: 12, Name: "Shatin", Kind: KindProperty, Price: 700, Rent: 75},
		{Position: 13, Name: "Blue Chance", Kind: KindChance},
		{Position: 14, Name: "Tuen Mun", Kind: KindProperty, Price: 400, Rent: 20},
		{Position: 15, Name: "Tai Po", Kind: KindProperty, Price: 500, Rent: 25},
		{Position: 16, Name: "Go To Jail", Kind: KindGoToJail},
		{Position: 17, Name: "Sai Kung", Kind: KindProperty, Price: 400, Rent: 10},
		{Position: 18, Name: "Yuen Long", Kind: KindProperty, Price: 400, Rent: 25},
		{Position: 19, Name: "Yellow Chance", Kind: KindChance},
		{Position: 20, Name: "Tai O", Kind: KindProperty, Price: 600, Rent: 25},
	})
	if err != nil {
		panic(err)
	}
	return b
}
