package riddle

// DefaultItems is the built-in intelligence-questions bank.
var DefaultItems = []Item{
	{
		Prompt:  "ما الذي له رأس ولا عين له؟",
		Answers: []string{"دبوس", "مسمار", "ابرة"},
	},
	{
		Prompt:  "شيء كلما أخذت منه كبر، ما هو؟",
		Answers: []string{"الحفرة", "حفرة"},
	},
	{
		Prompt:  "ما هو الشيء الذي يكتب ولا يقرأ؟",
		Answers: []string{"القلم", "قلم"},
	},
	{
		Prompt:  "أخت خالك وليست خالتك، من هي؟",
		Answers: []string{"امي", "أمي", "الام"},
	},
	{
		Prompt:  "ما هو الشيء الذي له أسنان ولا يعض؟",
		Answers: []string{"المشط", "مشط"},
		Hint:    "تستخدمه للشعر",
	},
	{
		Prompt:  "يسمع بلا أذن ويتكلم بلا لسان، ما هو؟",
		Answers: []string{"الهاتف", "هاتف", "التلفون", "تلفون"},
	},
	{
		Prompt:  "ما هو الشيء الذي يمشي ويقف وليس له أرجل؟",
		Answers: []string{"الساعة", "ساعة"},
	},
	{
		Prompt:  "كلي ثقوب ومع ذلك أحفظ الماء، ما أنا؟",
		Answers: []string{"الاسفنج", "اسفنج", "الاسفنجة"},
	},
}

// DefaultSongItems is the built-in song-guessing bank. Artist guesses
// match with containment, so a first or last name alone is accepted.
var DefaultSongItems = []Item{
	{
		Prompt:  "من غنى: على بالي يا ناسيني على بالي؟",
		Answers: []string{"شيرين", "شيرين عبد الوهاب"},
	},
	{
		Prompt:  "من غنى: تملي معاك؟",
		Answers: []string{"عمرو دياب"},
	},
	{
		Prompt:  "من غنى: الف ليلة وليلة؟",
		Answers: []string{"ام كلثوم", "أم كلثوم"},
	},
	{
		Prompt:  "من غنى: احبك موت؟",
		Answers: []string{"كاظم الساهر", "كاظم"},
	},
	{
		Prompt:  "من غنى: بتونس بيك؟",
		Answers: []string{"وردة", "وردة الجزائرية"},
	},
	{
		Prompt:  "من غنى: يا طير يا طاير؟",
		Answers: []string{"فيروز"},
	},
}
