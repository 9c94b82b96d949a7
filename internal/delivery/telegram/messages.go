package telegram

// Foydalanuvchiga ko'rinadigan matnlar (do'kon mijozlari arabcha yozadi)
const (
	msgWelcome = "👋 أهلاً بك في بوت أسعار الموبايلات!\n\nاختر طريقة البحث:"

	btnSearchByName  = "🔤 البحث عن طريق الاسم"
	btnSearchByBrand = "🏷️ البحث عن طريق الماركة"
	btnSearchByStore = "🏬 البحث عن طريق المتجر"
	btnSearchByPrice = "💰 البحث عن طريق السعر"
	btnBackToMenu    = "🔙 رجوع إلى القائمة الرئيسية"
	btnMore          = "المزيد ➕"
	btnSpecs         = "📎 رابط المواصفات"

	msgAskName      = "✏️ الآن أرسل اسم الجهاز:"
	msgAskPrice     = "✏️ الآن أرسل السعر (مثال: 750000):"
	msgPickBrand    = "🏷️ اختر الماركة:"
	msgPickStore    = "🏬 اختر المتجر:"
	msgStorePicked  = "🏬 تم اختيار المتجر: %s\n\n🔤 الآن أرسل اسم الجهاز للبحث ضمن هذا المتجر:"
	msgResultsPage  = "🔍 نتائج البحث (صفحة %d):"
	msgBrandPage    = "🏷️ أجهزة الماركة: %s (صفحة %d)"
	msgDidYouMean   = "🤔 هل تقصد أحد هذه الأجهزة؟ اختر أو أرسل اسماً آخر:"
	msgNoMatch      = "❌ لم يتم العثور على نتائج."
	msgNoBrand      = "❌ لا توجد أجهزة للماركة: %s"
	msgInvalidPrice = "⚠️ السعر غير صالح. أرسل رقماً فقط، مثال: 750000"
	msgNoResults    = "⚠️ لا توجد نتائج للعرض."
	msgEmptyList    = "⚠️ القائمة فارغة."
	msgChooseFirst  = "👇 اختر طريقة البحث أولاً:"
	msgTooMany      = "⚠️ طلبات كثيرة. انتظر قليلاً ثم حاول مرة أخرى."
	msgBusy         = "⚠️ البوت مشغول حالياً. حاول بعد قليل."
	msgInternal     = "⚠️ حدث خطأ داخلي. حاول مرة أخرى."
	msgSpecLink     = "📎 رابط المواصفات:\n%s"
	msgSpecNone     = "🔗 غير متوفر"
)
