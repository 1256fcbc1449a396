package rocks

import "math/rand"

// Facts shown on the idle screen, re-rolled on reset.
var Facts = []string{
	"Hematite is the primary ore of iron and often appears metallic gray or rusty red.",
	"Obsidian is natural volcanic glass formed when lava cools too quickly for crystals to grow.",
	"Diamonds are the hardest known natural material, scoring a perfect 10 on the Mohs scale.",
	"Quartz is the most common mineral found on Earth's continental crust.",
	"Gold is so malleable that one ounce can be stretched into a wire 50 miles long.",
	"Pumice is a volcanic rock so full of gas bubbles that it can float on water.",
	"Amethyst is actually a purple variety of quartz, colored by irradiation and iron impurities.",
	"Lapis Lazuli was ground up by Renaissance painters to make the pigment ultramarine.",
	"Halite is the mineral name for common table salt (sodium chloride).",
	"Bismuth crystals naturally form iridescent, stair-step patterns due to oxidation and growth rates.",
	"Opal is a hydrated amorphous form of silica and can contain up to 21% water.",
	"Magnetite is naturally magnetic and was used as the first compass by ancient civilizations.",
	"Talc is the softest known mineral, defining the value of 1 on the Mohs hardness scale.",
	"Pyrite is often called 'Fool's Gold' because of its metallic luster and pale brass-yellow hue.",
	"Geodes look like plain rocks on the outside but contain hollow cavities lined with crystals inside.",
}

// RandomFact picks one fact at random.
func RandomFact() string {
	return Facts[rand.Intn(len(Facts))]
}
